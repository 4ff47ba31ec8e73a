package alert

import (
	"context"
	"fmt"

	"finance-guru/models"
	"finance-guru/store"

	"github.com/shopspring/decimal"
)

const (
	balanceNegative = "negative"
	balanceLow      = "Low balance"
)

// CurrentBalance 当前余额，存储出错时返回错误而不是 0
func (e *Engine) CurrentBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	return e.store.CurrentBalance(ctx, userID)
}

// EvaluateBalance 余额为负时 danger，低于阈值时 warning，两档互斥
func (e *Engine) EvaluateBalance(ctx context.Context, userID uint) (*Alert, error) {
	balance, err := e.CurrentBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	low := decimal.NewFromFloat(e.thresholds.LowBalance)
	switch {
	case balance.IsNegative():
		return e.notify(ctx, userID, store.Contains(balanceNegative), Alert{
			Rule:     RuleBalance,
			Severity: models.SeverityDanger,
			Message: fmt.Sprintf("Alert! Your balance is %s: %s. Please add income or review expenses.",
				balanceNegative, money(balance)),
		})
	case balance.LessThan(low):
		return e.notify(ctx, userID, store.Contains(balanceLow), Alert{
			Rule:     RuleBalance,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%s alert: Only %s remaining. Consider reducing expenses.",
				balanceLow, money(balance)),
		})
	}
	return nil, nil
}
