package store

import (
	"context"
	"time"

	"finance-guru/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalsDueBetween 截止日期落在 [from, to] 且尚未完成的目标
func (s *Store) GoalsDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.conn(ctx).
		Where("user_id = ? AND deadline IS NOT NULL AND deadline >= ? AND deadline <= ? AND current_amount < target_amount",
			userID, models.Today(from), models.Today(to)).
		Order("deadline ASC, id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, wrap("goals due", err)
	}
	return goals, nil
}

// FindGoal 查找用户的目标
func (s *Store) FindGoal(ctx context.Context, userID, id uint) (*models.Goal, error) {
	var g models.Goal
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
		return nil, wrap("find goal", err)
	}
	return &g, nil
}

// CreateGoal 新建目标；初始金额大于 0 时同时记一笔储蓄支出并返回该流水，否则返回 nil
func (s *Store) CreateGoal(ctx context.Context, g *models.Goal, on time.Time) (*models.Transaction, error) {
	var posted *models.Transaction
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		if !g.CurrentAmount.IsPositive() {
			return nil
		}
		posted = goalTransaction(g, models.TransactionExpense, g.CurrentAmount,
			"Initial deposit for goal: "+g.Name, on)
		return tx.Create(posted).Error
	})
	if err != nil {
		return nil, wrap("create goal", err)
	}
	return posted, nil
}

// AdjustGoal 存入（正数）或取出（负数）目标金额，并记录关联流水
//
// 金额在库内原子累加，随后在同一事务内重新读取，并发存入不会丢失更新。
// 返回调整前的金额（供调用方判断是否跨越目标）和记下的流水。
func (s *Store) AdjustGoal(ctx context.Context, g *models.Goal, delta decimal.Decimal, on time.Time) (decimal.Decimal, *models.Transaction, error) {
	typ := models.TransactionExpense
	desc := "Added to goal: " + g.Name
	if delta.IsNegative() {
		typ = models.TransactionIncome
		desc = "Withdrawn from goal: " + g.Name
	}
	posted := goalTransaction(g, typ, delta.Abs(), desc, on)

	var current decimal.Decimal
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", g.ID, g.UserID).
			Update("current_amount", gorm.Expr("current_amount + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		row := tx.Model(&models.Goal{}).Select("current_amount").Where("id = ?", g.ID).Row()
		var err error
		if current, err = scanDecimal(row); err != nil {
			return err
		}
		return tx.Create(posted).Error
	})
	if err != nil {
		return g.CurrentAmount, nil, wrap("adjust goal", err)
	}
	g.CurrentAmount = current
	return current.Sub(delta), posted, nil
}

func goalTransaction(g *models.Goal, typ models.TransactionType, amount decimal.Decimal, desc string, on time.Time) *models.Transaction {
	return &models.Transaction{
		UserID:        g.UserID,
		Type:          typ,
		Category:      models.CategoryFinancialGoal,
		Amount:        amount,
		Description:   desc,
		PaymentMethod: models.PaymentMethodSavings,
		Date:          models.Today(on),
	}
}
