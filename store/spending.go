package store

import (
	"context"
	"time"

	"finance-guru/models"

	"github.com/shopspring/decimal"
)

// CategoryStats 某类别历史支出的样本统计
type CategoryStats struct {
	Count int64
	Avg   decimal.Decimal
	Max   decimal.Decimal
}

// DailyTotal 单日支出合计
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}

// CategoryExpenseStats 统计 since 之后某类别的支出笔数、均值和最大值
// excludeID 非 0 时排除该流水（刚插入的那一笔不算历史基线）
func (s *Store) CategoryExpenseStats(ctx context.Context, userID uint, category string, since time.Time, excludeID uint) (CategoryStats, error) {
	var row struct {
		SampleCount int64
		AvgAmount   decimal.NullDecimal
		MaxAmount   decimal.NullDecimal
	}
	q := s.conn(ctx).Unscoped().Model(&models.Transaction{}).
		Select("COUNT(*) AS sample_count, AVG(amount) AS avg_amount, MAX(amount) AS max_amount").
		Where("user_id = ? AND type = ? AND LOWER(category) = ? AND date >= ?",
			userID, models.TransactionExpense, models.NormalizeCategory(category), models.Today(since))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Scan(&row).Error; err != nil {
		return CategoryStats{}, wrap("category stats", err)
	}

	stats := CategoryStats{Count: row.SampleCount}
	if row.AvgAmount.Valid {
		stats.Avg = row.AvgAmount.Decimal
	}
	if row.MaxAmount.Valid {
		stats.Max = row.MaxAmount.Decimal
	}
	return stats, nil
}

// DailyExpenseTotals since 之后按天汇总的支出
func (s *Store) DailyExpenseTotals(ctx context.Context, userID uint, since time.Time) ([]DailyTotal, error) {
	var rows []DailyTotal
	err := s.conn(ctx).Unscoped().Model(&models.Transaction{}).
		Select("date AS day, SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND date >= ?", userID, models.TransactionExpense, models.Today(since)).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("daily totals", err)
	}
	return rows, nil
}

// ExpenseTotalOn 某一天的支出合计
func (s *Store) ExpenseTotalOn(ctx context.Context, userID uint, day time.Time) (decimal.Decimal, error) {
	start, end := dayRange(day)
	row := s.conn(ctx).Unscoped().Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, models.TransactionExpense, start, end).
		Row()
	v, err := scanDecimal(row)
	if err != nil {
		return decimal.Zero, wrap("day total", err)
	}
	return v, nil
}
