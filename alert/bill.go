package alert

import (
	"context"
	"fmt"

	"finance-guru/models"
	"finance-guru/store"
)

// PaymentResult 账单支付结果，Next 为周期账单生成的下一期
type PaymentResult struct {
	Bill *models.Bill `json:"bill"`
	Next *models.Bill `json:"next,omitempty"`
}

// EvaluateBillReminders 检查未支付账单：逾期 danger，当天到期 warning，BillWindowDays 天内 info
// 按账单名称当天去重
func (e *Engine) EvaluateBillReminders(ctx context.Context, userID uint) ([]Alert, error) {
	today := e.today()
	bills, err := e.store.PendingBills(ctx, userID)
	if err != nil {
		return nil, err
	}

	var alerts []Alert
	for i := range bills {
		b := &bills[i]
		a, ok := billReminder(b, b.DaysUntil(today), e.thresholds.BillWindowDays)
		if !ok {
			continue
		}
		emitted, err := e.notify(ctx, userID, store.Contains(b.Name), a)
		if err != nil {
			e.logFailure(RuleBillReminder, userID, err)
			continue
		}
		if emitted != nil {
			alerts = append(alerts, *emitted)
		}
	}
	return alerts, nil
}

func billReminder(b *models.Bill, daysUntil, window int) (Alert, bool) {
	amount := wholeMoney(b.Amount)
	switch {
	case daysUntil < 0:
		return Alert{
			Rule:     RuleBillReminder,
			Severity: models.SeverityDanger,
			Message:  fmt.Sprintf("OVERDUE: %s (%s) was due %d days ago!", b.Name, amount, -daysUntil),
		}, true
	case daysUntil == 0:
		return Alert{
			Rule:     RuleBillReminder,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("DUE TODAY: %s (%s) is due today!", b.Name, amount),
		}, true
	case daysUntil <= window:
		return Alert{
			Rule:     RuleBillReminder,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("REMINDER: %s (%s) is due in %d days", b.Name, amount, daysUntil),
		}, true
	}
	return Alert{}, false
}

// MarkBillPaid 支付账单；周期账单在同一事务内生成下一期
// 账单不是 pending 状态时返回 store.ErrInvalidBillTransition
func (e *Engine) MarkBillPaid(ctx context.Context, userID, billID uint) (*PaymentResult, error) {
	bill, err := e.store.FindBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	next, err := e.store.PayBill(ctx, bill, e.today())
	if err != nil {
		return nil, err
	}

	_, err = e.notify(ctx, userID, nil, Alert{
		Rule:     RuleBillPaid,
		Severity: models.SeveritySuccess,
		Message:  fmt.Sprintf("Bill paid: %s (%s)", bill.Name, wholeMoney(bill.Amount)),
	})
	if err != nil {
		e.logFailure(RuleBillPaid, userID, err)
	}
	return &PaymentResult{Bill: bill, Next: next}, nil
}

// MarkBillUnpaid 撤销支付，仅 paid 状态可撤销
func (e *Engine) MarkBillUnpaid(ctx context.Context, userID, billID uint) (*models.Bill, error) {
	bill, err := e.store.FindBill(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if err := e.store.UnpayBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}
