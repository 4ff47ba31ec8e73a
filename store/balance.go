package store

import (
	"context"

	"finance-guru/models"

	"github.com/shopspring/decimal"
)

// InitialBalance 用户初始余额
func (s *Store) InitialBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	row := s.conn(ctx).Model(&models.User{}).
		Select("initial_balance").
		Where("id = ?", userID).
		Row()
	v, err := scanDecimal(row)
	if err != nil {
		return decimal.Zero, wrap("initial balance", err)
	}
	return v, nil
}

// SumTransactions 未删除流水按类型求和
func (s *Store) SumTransactions(ctx context.Context, userID uint, typ models.TransactionType) (decimal.Decimal, error) {
	row := s.conn(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, typ).
		Row()
	v, err := scanDecimal(row)
	if err != nil {
		return decimal.Zero, wrap("sum "+string(typ), err)
	}
	return v, nil
}

// CurrentBalance 当前余额 = 初始余额 + 收入 - 支出（均不含软删除流水）
// 任何一步出错都直接返回错误，不以 0 代替
func (s *Store) CurrentBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	initial, err := s.InitialBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	income, err := s.SumTransactions(ctx, userID, models.TransactionIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.SumTransactions(ctx, userID, models.TransactionExpense)
	if err != nil {
		return decimal.Zero, err
	}
	return initial.Add(income).Sub(expense), nil
}
