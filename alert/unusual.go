package alert

import (
	"context"
	"fmt"
	"time"

	"finance-guru/models"
	"finance-guru/store"

	"github.com/shopspring/decimal"
)

const (
	unusualSpending = "Unusual spending"
	largeExpense    = "Large expense"
	dailySpending   = "daily spending"
)

// EvaluateUnusualSpending 将新支出与历史基线比较
//
// 类别基线：近 3 个月该类别的支出（不含本笔），至少 MinSamples 笔且均值 > 0；
// 金额 >= 均值 × UnusualAvgFactor 提示异常，否则 >= 历史最大值 × UnusualMaxFactor 提示大额。
// 类别检查命中即返回；否则做按天检查：今天累计支出 >= 近 1 个月日均 × DailyFactor。
func (e *Engine) EvaluateUnusualSpending(ctx context.Context, tx *models.Transaction) (*Alert, error) {
	if tx.Type != models.TransactionExpense {
		return nil, nil
	}
	today := e.today()

	a, matched, err := e.categoryOutlier(ctx, tx, today)
	if err != nil || matched {
		// 类别规则命中但今天已提醒过时 a 为 nil，同样不再做按天检查
		return a, err
	}
	return e.dailyOutlier(ctx, tx.UserID, today)
}

// categoryOutlier matched 表示规则命中，与通知是否因去重被跳过无关
func (e *Engine) categoryOutlier(ctx context.Context, tx *models.Transaction, today time.Time) (*Alert, bool, error) {
	stats, err := e.store.CategoryExpenseStats(ctx, tx.UserID, tx.Category, today.AddDate(0, -3, 0), tx.ID)
	if err != nil {
		return nil, false, err
	}
	if stats.Count < int64(e.thresholds.MinSamples) || !stats.Avg.IsPositive() {
		return nil, false, nil
	}

	amount := tx.Amount
	amountText := wholeMoney(amount)
	subject := outlierSubject(amountText, tx.Category)
	if amount.GreaterThanOrEqual(stats.Avg.Mul(decimal.NewFromFloat(e.thresholds.UnusualAvgFactor))) {
		a, err := e.notify(ctx, tx.UserID, store.Contains(unusualSpending, subject), Alert{
			Rule:     RuleUnusual,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%s detected! %sis %sx your average (%s)",
				unusualSpending, subject, amount.Div(stats.Avg).StringFixed(1), wholeMoney(stats.Avg)),
		})
		return a, true, err
	}
	if stats.Max.IsPositive() && amount.GreaterThanOrEqual(stats.Max.Mul(decimal.NewFromFloat(e.thresholds.UnusualMaxFactor))) {
		a, err := e.notify(ctx, tx.UserID, store.Contains(largeExpense, subject), Alert{
			Rule:     RuleUnusual,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("%s alert: %sexceeds your usual spending pattern", largeExpense, subject),
		})
		return a, true, err
	}
	return nil, false, nil
}

// outlierSubject 形如 "₹100 on Food "，前后的货币符号和空格使 ₹50 不匹配 ₹500，Food 不匹配 Fast Food
func outlierSubject(amountText, category string) string {
	return amountText + " on " + category + " "
}

// dailyOutlier 日均包含今天在内的近 1 个月每天支出合计
func (e *Engine) dailyOutlier(ctx context.Context, userID uint, today time.Time) (*Alert, error) {
	days, err := e.store.DailyExpenseTotals(ctx, userID, today.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	sum := decimal.Zero
	for _, d := range days {
		sum = sum.Add(d.Total)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(days))))
	if !avg.IsPositive() {
		return nil, nil
	}

	todayTotal, err := e.store.ExpenseTotalOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if todayTotal.LessThan(avg.Mul(decimal.NewFromFloat(e.thresholds.DailyFactor))) {
		return nil, nil
	}
	return e.notify(ctx, userID, store.Contains(dailySpending), Alert{
		Rule:     RuleDailySpending,
		Severity: models.SeverityWarning,
		Message: fmt.Sprintf("High %s: You've spent %s today, which is %sx your daily average",
			dailySpending, wholeMoney(todayTotal), todayTotal.Div(avg).StringFixed(1)),
	})
}
