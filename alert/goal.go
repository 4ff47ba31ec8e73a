package alert

import (
	"context"
	"fmt"

	"finance-guru/models"
	"finance-guru/store"

	"github.com/shopspring/decimal"
)

const goalDeadline = "deadline"

// EvaluateGoalDeadlines 未完成且截止日期在 GoalWindowDays 天内的目标
// 单个目标出错只记录日志，继续检查其余目标
func (e *Engine) EvaluateGoalDeadlines(ctx context.Context, userID uint) ([]Alert, error) {
	today := e.today()
	goals, err := e.store.GoalsDueBetween(ctx, userID, today, today.AddDate(0, 0, e.thresholds.GoalWindowDays))
	if err != nil {
		return nil, err
	}

	var alerts []Alert
	for i := range goals {
		g := &goals[i]
		if g.Deadline == nil || g.IsComplete() {
			continue
		}
		a, err := e.notify(ctx, userID, store.Contains(g.Name, goalDeadline), goalDeadlineAlert(g, models.DaysBetween(today, *g.Deadline)))
		if err != nil {
			e.logFailure(RuleGoalDeadline, userID, err)
			continue
		}
		if a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts, nil
}

func goalDeadlineAlert(g *models.Goal, daysLeft int) Alert {
	remaining := wholeMoney(g.Remaining())
	switch {
	case daysLeft <= 0:
		return Alert{
			Rule:     RuleGoalDeadline,
			Severity: models.SeverityDanger,
			Message:  fmt.Sprintf("Goal '%s' %s is today! %s still needed.", g.Name, goalDeadline, remaining),
		}
	case daysLeft == 1:
		return Alert{
			Rule:     RuleGoalDeadline,
			Severity: models.SeverityDanger,
			Message:  fmt.Sprintf("Goal '%s' %s is tomorrow! %s still needed.", g.Name, goalDeadline, remaining),
		}
	case daysLeft <= 3:
		return Alert{
			Rule:     RuleGoalDeadline,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("Goal '%s' %s in %d days. %s remaining.", g.Name, goalDeadline, daysLeft, remaining),
		}
	}
	return Alert{
		Rule:     RuleGoalDeadline,
		Severity: models.SeverityInfo,
		Message:  fmt.Sprintf("Goal '%s' %s approaching in %d days. %s remaining.", g.Name, goalDeadline, daysLeft, remaining),
	}
}

// GoalProgress 目标金额由 previous 变为 current 后调用
// 只在跨越目标的那一次存入时发出完成通知
func (e *Engine) GoalProgress(ctx context.Context, userID uint, goal *models.Goal, previous, current decimal.Decimal) *Alert {
	if !models.CrossesTarget(previous, current, goal.TargetAmount) {
		return nil
	}
	a, err := e.notify(ctx, userID, nil, Alert{
		Rule:     RuleGoalCompleted,
		Severity: models.SeveritySuccess,
		Message: fmt.Sprintf("Congratulations! You've reached your goal '%s'! Target: %s",
			goal.Name, wholeMoney(goal.TargetAmount)),
	})
	if err != nil {
		e.logFailure(RuleGoalCompleted, userID, err)
		return nil
	}
	return a
}
