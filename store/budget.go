package store

import (
	"context"

	"finance-guru/models"

	"github.com/shopspring/decimal"
)

// FindBudget 按 (用户, 小写类别, 月份) 查找预算
func (s *Store) FindBudget(ctx context.Context, userID uint, category, month string) (*models.Budget, error) {
	var b models.Budget
	err := s.conn(ctx).
		Where("user_id = ? AND LOWER(category) = ? AND month = ?", userID, models.NormalizeCategory(category), month).
		First(&b).Error
	if err != nil {
		return nil, wrap("find budget", err)
	}
	return &b, nil
}

// CategorySpend 某月某类别的支出合计
// 包含已软删除的流水
func (s *Store) CategorySpend(ctx context.Context, userID uint, category, month string) (decimal.Decimal, error) {
	start, end, err := models.MonthRange(month)
	if err != nil {
		return decimal.Zero, err
	}
	row := s.conn(ctx).Unscoped().Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND LOWER(category) = ? AND date >= ? AND date < ?",
			userID, models.TransactionExpense, models.NormalizeCategory(category), start, end).
		Row()
	v, err := scanDecimal(row)
	if err != nil {
		return decimal.Zero, wrap("category spend", err)
	}
	return v, nil
}

// ListBudgets 某月的全部预算
func (s *Store) ListBudgets(ctx context.Context, userID uint, month string) ([]models.Budget, error) {
	var list []models.Budget
	err := s.conn(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		Order("category ASC").
		Find(&list).Error
	if err != nil {
		return nil, wrap("list budgets", err)
	}
	return list, nil
}

// CreateBudget 新建预算，插入前检查 (用户, 类别, 月份) 是否已存在
func (s *Store) CreateBudget(ctx context.Context, b *models.Budget) error {
	b.Category = models.NormalizeCategory(b.Category)

	var count int64
	err := s.conn(ctx).Model(&models.Budget{}).
		Where("user_id = ? AND LOWER(category) = ? AND month = ?", b.UserID, b.Category, b.Month).
		Count(&count).Error
	if err != nil {
		return wrap("check budget", err)
	}
	if count > 0 {
		return ErrDuplicateBudget
	}
	return wrap("create budget", s.conn(ctx).Create(b).Error)
}

// UpdateBudgetLimit 修改预算额度
func (s *Store) UpdateBudgetLimit(ctx context.Context, userID, id uint, limit decimal.Decimal) (*models.Budget, error) {
	var b models.Budget
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		return nil, wrap("find budget", err)
	}
	if err := s.conn(ctx).Model(&b).Update("limit_amount", limit).Error; err != nil {
		return nil, wrap("update budget", err)
	}
	b.LimitAmount = limit
	return &b, nil
}

// DeleteBudget 删除预算
func (s *Store) DeleteBudget(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
	if res.Error != nil {
		return wrap("delete budget", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeBudgetsBefore 删除早于 month 的预算，预算页加载时惰性执行
func (s *Store) PurgeBudgetsBefore(ctx context.Context, userID uint, month string) (int64, error) {
	res := s.conn(ctx).Where("user_id = ? AND month < ?", userID, month).Delete(&models.Budget{})
	if res.Error != nil {
		return 0, wrap("purge budgets", res.Error)
	}
	return res.RowsAffected, nil
}

