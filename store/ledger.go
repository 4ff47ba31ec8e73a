package store

import (
	"context"
	"strings"
	"time"

	"finance-guru/models"
)

// CreateTransaction 记一笔流水
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	tx.Category = strings.TrimSpace(tx.Category)
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = models.PaymentMethodCash
	}
	tx.Date = models.Today(tx.Date)
	return wrap("create transaction", s.conn(ctx).Create(tx).Error)
}

// ListTransactions 某月未删除的流水，最新在前
func (s *Store) ListTransactions(ctx context.Context, userID uint, month string) ([]models.Transaction, error) {
	start, end, err := models.MonthRange(month)
	if err != nil {
		return nil, err
	}
	return s.TransactionsBetween(ctx, userID, start, end)
}

// TransactionsBetween [from, to) 区间内未删除的流水
func (s *Store) TransactionsBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error) {
	var list []models.Transaction
	err := s.conn(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, wrap("list transactions", err)
	}
	return list, nil
}

// RecentTransactions 最近 limit 笔未删除的流水
func (s *Store) RecentTransactions(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, wrap("recent transactions", err)
	}
	return list, nil
}

// DeleteTransaction 软删除流水；余额不再计入，预算统计仍然计入
func (s *Store) DeleteTransaction(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return wrap("delete transaction", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGoals 用户的全部目标，截止日期近的在前，无截止日期的排最后
func (s *Store) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("deadline IS NULL, deadline ASC, id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, wrap("list goals", err)
	}
	return goals, nil
}

// DeleteGoal 删除目标，已记录的关联流水保留
func (s *Store) DeleteGoal(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return wrap("delete goal", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBills 全部账单：未支付在前，再按到期日
func (s *Store) ListBills(ctx context.Context, userID uint) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("status <> 'pending', due_date ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return nil, wrap("list bills", err)
	}
	return bills, nil
}

// CreateBill 新建账单，状态固定从 pending 开始
func (s *Store) CreateBill(ctx context.Context, b *models.Bill) error {
	b.Status = models.BillPending
	b.PaidDate = nil
	b.DueDate = models.Today(b.DueDate)
	if b.Category == "" {
		b.Category = models.DefaultBillCategory
	}
	if !b.Recurrence.IsValid() {
		b.Recurrence = models.RecurrenceMonthly
	}
	return wrap("create bill", s.conn(ctx).Create(b).Error)
}

// DeleteBill 删除账单
func (s *Store) DeleteBill(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Bill{})
	if res.Error != nil {
		return wrap("delete bill", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
