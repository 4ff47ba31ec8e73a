package store

import (
	"context"
	"time"

	"finance-guru/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal 单个类别的支出合计
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal 单月收支合计
type MonthlyTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// SumBetween [from, to) 区间内未删除流水按类型求和
func (s *Store) SumBetween(ctx context.Context, userID uint, typ models.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	row := s.conn(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, typ, from, to).
		Row()
	v, err := scanDecimal(row)
	if err != nil {
		return decimal.Zero, wrap("sum between", err)
	}
	return v, nil
}

// CategoryTotals [from, to) 区间内未删除支出按类别汇总，金额大的在前
func (s *Store) CategoryTotals(ctx context.Context, userID uint, from, to time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := s.conn(ctx).Model(&models.Transaction{}).
		Select("LOWER(category) AS category, SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, models.TransactionExpense, from, to).
		Group("LOWER(category)").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, wrap("category totals", err)
	}
	return totals, nil
}

// MonthlyTotals 最近 months 个月（含本月）的收支，按月份升序，没有流水的月份补 0
func (s *Store) MonthlyTotals(ctx context.Context, userID uint, now time.Time, months int) ([]MonthlyTotal, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)

	var rows []struct {
		Month string
		Type  models.TransactionType
		Total decimal.Decimal
	}
	err := s.conn(ctx).Model(&models.Transaction{}).
		Select("DATE_FORMAT(date, '%Y-%m') AS month, type, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, first, end).
		Group("month, type").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("monthly totals", err)
	}

	out := make([]MonthlyTotal, months)
	index := make(map[string]int, months)
	for i := range out {
		m := models.MonthOf(first.AddDate(0, i, 0))
		out[i] = MonthlyTotal{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
		index[m] = i
	}
	for _, r := range rows {
		i, ok := index[r.Month]
		if !ok {
			continue
		}
		switch r.Type {
		case models.TransactionIncome:
			out[i].Income = out[i].Income.Add(r.Total)
		case models.TransactionExpense:
			out[i].Expense = out[i].Expense.Add(r.Total)
		}
	}
	return out, nil
}
