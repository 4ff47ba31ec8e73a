package alert

import (
	"context"

	"finance-guru/models"
)

// 触发点钩子：每个规则单独执行，出错只记日志，不影响其他规则和调用方。
// 返回第一条新产生的提醒，供接口在响应中展示。

// AfterExpense 新增支出后：预算（标准分档）-> 异常消费 -> 余额
func (e *Engine) AfterExpense(ctx context.Context, tx *models.Transaction) *Alert {
	var first *Alert
	first = e.keep(first, RuleBudget, tx.UserID, func() (*Alert, error) {
		return e.EvaluateBudget(ctx, tx.UserID, tx.Category, models.MonthOf(tx.Date), BandingStandard)
	})
	first = e.keep(first, RuleUnusual, tx.UserID, func() (*Alert, error) {
		return e.EvaluateUnusualSpending(ctx, tx)
	})
	first = e.keep(first, RuleBalance, tx.UserID, func() (*Alert, error) {
		return e.EvaluateBalance(ctx, tx.UserID)
	})
	return first
}

// AfterIncome 新增收入后检查余额
func (e *Engine) AfterIncome(ctx context.Context, userID uint) *Alert {
	return e.keep(nil, RuleBalance, userID, func() (*Alert, error) {
		return e.EvaluateBalance(ctx, userID)
	})
}

// OnDashboard 仪表盘加载：目标截止、账单提醒、余额
func (e *Engine) OnDashboard(ctx context.Context, userID uint) *Alert {
	first := e.scanDeadlines(ctx, userID)
	return e.keep(first, RuleBalance, userID, func() (*Alert, error) {
		return e.EvaluateBalance(ctx, userID)
	})
}

// OnBillsView 账单页加载：目标截止、账单提醒
func (e *Engine) OnBillsView(ctx context.Context, userID uint) *Alert {
	return e.scanDeadlines(ctx, userID)
}

// OnBudgetsView 预算页加载：清理往月预算，再按含提示档的分档检查本月每个预算
func (e *Engine) OnBudgetsView(ctx context.Context, userID uint) *Alert {
	month := models.MonthOf(e.now())
	if _, err := e.store.PurgeBudgetsBefore(ctx, userID, month); err != nil {
		e.logFailure(RuleBudget, userID, err)
	}

	budgets, err := e.store.ListBudgets(ctx, userID, month)
	if err != nil {
		e.logFailure(RuleBudget, userID, err)
		return nil
	}
	var first *Alert
	for _, b := range budgets {
		category := b.Category
		first = e.keep(first, RuleBudget, userID, func() (*Alert, error) {
			return e.EvaluateBudget(ctx, userID, category, month, BandingWithInfo)
		})
	}
	return first
}

// AfterBudgetChange 新建预算或修改额度后检查该预算
func (e *Engine) AfterBudgetChange(ctx context.Context, userID uint, category, month string) *Alert {
	return e.keep(nil, RuleBudget, userID, func() (*Alert, error) {
		return e.EvaluateBudget(ctx, userID, category, month, BandingWithInfo)
	})
}

func (e *Engine) scanDeadlines(ctx context.Context, userID uint) *Alert {
	var first *Alert
	first = e.keepFirst(first, RuleGoalDeadline, userID, func() ([]Alert, error) {
		return e.EvaluateGoalDeadlines(ctx, userID)
	})
	first = e.keepFirst(first, RuleBillReminder, userID, func() ([]Alert, error) {
		return e.EvaluateBillReminders(ctx, userID)
	})
	return first
}

// keep 执行单条规则，吞掉错误；first 已有值时保留 first
func (e *Engine) keep(first *Alert, rule Rule, userID uint, eval func() (*Alert, error)) *Alert {
	a, err := eval()
	if err != nil {
		e.logFailure(rule, userID, err)
		return first
	}
	if first == nil {
		return a
	}
	return first
}

func (e *Engine) keepFirst(first *Alert, rule Rule, userID uint, eval func() ([]Alert, error)) *Alert {
	return e.keep(first, rule, userID, func() (*Alert, error) {
		alerts, err := eval()
		if err != nil || len(alerts) == 0 {
			return nil, err
		}
		return &alerts[0], nil
	})
}
