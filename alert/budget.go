package alert

import (
	"context"
	"errors"
	"fmt"

	"finance-guru/models"
	"finance-guru/store"

	"github.com/shopspring/decimal"
)

// Banding 预算分档策略
type Banding int

const (
	// BandingStandard 80% 警告 / 100% 超支，单笔支出后的检查使用
	BandingStandard Banding = iota
	// BandingWithInfo 额外包含 50% 的提示档，预算页和预算变更后使用
	BandingWithInfo
)

// 分档关键词，同时作为当天去重的匹配依据
const (
	budgetExceeded = "exceeded"
	budgetWarning  = "warning"
	budgetHeadsUp  = "Heads up"
)

var hundred = decimal.NewFromInt(100)

// BudgetUsage 预算使用情况
type BudgetUsage struct {
	Budget    models.Budget   `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
}

// Percent 已用百分比，limit <= 0 时为 0
func Percent(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return spent.Mul(hundred).Div(limit)
}

// reached 判断 spent/limit >= pct%，用乘法比较避免除法截断
func reached(spent, limit decimal.Decimal, pct int64) bool {
	if !limit.IsPositive() {
		return false
	}
	return spent.Mul(hundred).GreaterThanOrEqual(limit.Mul(decimal.NewFromInt(pct)))
}

// budgetAlert 按分档从高到低取第一个命中的档位
func budgetAlert(category string, spent, limit decimal.Decimal, banding Banding) (Alert, string, bool) {
	pct := Percent(spent, limit).Round(0).String()
	switch {
	case reached(spent, limit, 100):
		return Alert{
			Rule:     RuleBudget,
			Severity: models.SeverityDanger,
			Message: fmt.Sprintf("Budget exceeded! You've spent %s of %s (%s%%) on %s",
				wholeMoney(spent), wholeMoney(limit), pct, category),
		}, budgetExceeded, true
	case reached(spent, limit, 80):
		return Alert{
			Rule:     RuleBudget,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Budget warning! You've used %s%% of your %s budget (%s/%s)",
				pct, category, wholeMoney(spent), wholeMoney(limit)),
		}, budgetWarning, true
	case banding == BandingWithInfo && reached(spent, limit, 50):
		return Alert{
			Rule:     RuleBudget,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("Heads up: You've used %s%% of your %s budget", pct, category),
		}, budgetHeadsUp, true
	}
	return Alert{}, "", false
}

// EvaluateBudget 检查某类别某月的预算使用情况
// 没有预算时不提醒；同一 (用户, 类别, 档位) 每天最多一条
func (e *Engine) EvaluateBudget(ctx context.Context, userID uint, category, month string, banding Banding) (*Alert, error) {
	budget, err := e.store.FindBudget(ctx, userID, category, month)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	spent, err := e.store.CategorySpend(ctx, userID, budget.Category, month)
	if err != nil {
		return nil, err
	}

	a, keyword, ok := budgetAlert(budget.Category, spent, budget.LimitAmount, banding)
	if !ok {
		return nil, nil
	}
	return e.notify(ctx, userID, store.Contains(budget.Category, keyword), a)
}

// BudgetStatus 某月全部预算的花费、剩余和百分比
func (e *Engine) BudgetStatus(ctx context.Context, userID uint, month string) ([]BudgetUsage, error) {
	budgets, err := e.store.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	usages := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		spent, err := e.store.CategorySpend(ctx, userID, b.Category, month)
		if err != nil {
			return nil, err
		}
		usages = append(usages, BudgetUsage{
			Budget:    b,
			Spent:     spent,
			Remaining: b.LimitAmount.Sub(spent),
			Percent:   Percent(spent, b.LimitAmount).Round(1),
		})
	}
	return usages, nil
}
