package alert

import (
	"context"
	"sort"
	"strings"
	"time"

	"finance-guru/models"
	"finance-guru/store"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type notification struct {
	userID   uint
	message  string
	severity models.Severity
	created  time.Time
}

// memStore 内存版存储，语义与 store.Store 保持一致
type memStore struct {
	now func() time.Time

	initial       map[uint]decimal.Decimal
	transactions  []models.Transaction
	budgets       []models.Budget
	goals         []models.Goal
	bills         []models.Bill
	notifications []notification
	nextID        uint

	// 按方法名注入错误
	fail map[string]error
}

var _ Store = (*memStore)(nil)

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		now:     now,
		initial: map[uint]decimal.Decimal{},
		fail:    map[string]error{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addTransaction(userID uint, typ models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	m.transactions = append(m.transactions, models.Transaction{
		ID:       m.id(),
		UserID:   userID,
		Type:     typ,
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		Date:     models.Today(date),
	})
	t := m.transactions[len(m.transactions)-1]
	return &t
}

func (m *memStore) addBudget(userID uint, category, month string, limit float64) {
	m.budgets = append(m.budgets, models.Budget{
		ID:          m.id(),
		UserID:      userID,
		Category:    models.NormalizeCategory(category),
		Month:       month,
		LimitAmount: decimal.NewFromFloat(limit),
	})
}

func (m *memStore) softDelete(id uint) {
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			m.transactions[i].DeletedAt = gorm.DeletedAt{Time: m.now(), Valid: true}
		}
	}
}

func (m *memStore) messages(userID uint) []string {
	var out []string
	for _, n := range m.notifications {
		if n.userID == userID {
			out = append(out, n.message)
		}
	}
	return out
}

func (m *memStore) countContaining(userID uint, sub string) int {
	c := 0
	for _, msg := range m.messages(userID) {
		if strings.Contains(msg, sub) {
			c++
		}
	}
	return c
}

func (m *memStore) CurrentBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	if err := m.fail["CurrentBalance"]; err != nil {
		return decimal.Zero, err
	}
	balance := m.initial[userID]
	for _, t := range m.transactions {
		if t.UserID != userID || t.IsDeleted() {
			continue
		}
		if t.Type == models.TransactionIncome {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

func (m *memStore) FindBudget(ctx context.Context, userID uint, category, month string) (*models.Budget, error) {
	if err := m.fail["FindBudget"]; err != nil {
		return nil, err
	}
	for _, b := range m.budgets {
		if b.UserID == userID && b.Category == models.NormalizeCategory(category) && b.Month == month {
			found := b
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) CategorySpend(ctx context.Context, userID uint, category, month string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.UserID == userID && t.Type == models.TransactionExpense &&
			models.NormalizeCategory(t.Category) == models.NormalizeCategory(category) &&
			models.MonthOf(t.Date) == month {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *memStore) ListBudgets(ctx context.Context, userID uint, month string) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range m.budgets {
		if b.UserID == userID && b.Month == month {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) PurgeBudgetsBefore(ctx context.Context, userID uint, month string) (int64, error) {
	var kept []models.Budget
	var purged int64
	for _, b := range m.budgets {
		if b.UserID == userID && b.Month < month {
			purged++
			continue
		}
		kept = append(kept, b)
	}
	m.budgets = kept
	return purged, nil
}

func (m *memStore) CategoryExpenseStats(ctx context.Context, userID uint, category string, since time.Time, excludeID uint) (store.CategoryStats, error) {
	var stats store.CategoryStats
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.UserID != userID || t.Type != models.TransactionExpense || t.ID == excludeID ||
			models.NormalizeCategory(t.Category) != models.NormalizeCategory(category) ||
			t.Date.Before(models.Today(since)) {
			continue
		}
		stats.Count++
		sum = sum.Add(t.Amount)
		if t.Amount.GreaterThan(stats.Max) {
			stats.Max = t.Amount
		}
	}
	if stats.Count > 0 {
		stats.Avg = sum.Div(decimal.NewFromInt(stats.Count))
	}
	return stats, nil
}

func (m *memStore) DailyExpenseTotals(ctx context.Context, userID uint, since time.Time) ([]store.DailyTotal, error) {
	totals := map[time.Time]decimal.Decimal{}
	for _, t := range m.transactions {
		if t.UserID == userID && t.Type == models.TransactionExpense && !t.Date.Before(models.Today(since)) {
			totals[t.Date] = totals[t.Date].Add(t.Amount)
		}
	}
	out := make([]store.DailyTotal, 0, len(totals))
	for day, total := range totals {
		out = append(out, store.DailyTotal{Day: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (m *memStore) ExpenseTotalOn(ctx context.Context, userID uint, day time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.UserID == userID && t.Type == models.TransactionExpense && t.Date.Equal(models.Today(day)) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *memStore) GoalsDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range m.goals {
		if g.UserID != userID || g.Deadline == nil || g.IsComplete() {
			continue
		}
		if g.Deadline.Before(models.Today(from)) || g.Deadline.After(models.Today(to)) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *memStore) PendingBills(ctx context.Context, userID uint) ([]models.Bill, error) {
	if err := m.fail["PendingBills"]; err != nil {
		return nil, err
	}
	var out []models.Bill
	for _, b := range m.bills {
		if b.UserID == userID && b.Status == models.BillPending {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) FindBill(ctx context.Context, userID, id uint) (*models.Bill, error) {
	for _, b := range m.bills {
		if b.UserID == userID && b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) PayBill(ctx context.Context, bill *models.Bill, paidOn time.Time) (*models.Bill, error) {
	for i := range m.bills {
		b := &m.bills[i]
		if b.ID != bill.ID {
			continue
		}
		if b.Status != models.BillPending {
			return nil, store.ErrInvalidBillTransition
		}
		paid := models.Today(paidOn)
		b.Status = b.PaidStatus()
		b.PaidDate = &paid
		*bill = *b

		next := b.NextOccurrence()
		if next != nil {
			next.ID = m.id()
			m.bills = append(m.bills, *next)
		}
		return next, nil
	}
	return nil, store.ErrNotFound
}

func (m *memStore) UnpayBill(ctx context.Context, bill *models.Bill) error {
	for i := range m.bills {
		b := &m.bills[i]
		if b.ID != bill.ID {
			continue
		}
		if b.Status != models.BillPaid {
			return store.ErrInvalidBillTransition
		}
		b.Status = models.BillPending
		b.PaidDate = nil
		*bill = *b
		return nil
	}
	return store.ErrNotFound
}

// ExistsToday 与 MySQL 默认排序规则一致，LIKE 不区分大小写
func (m *memStore) ExistsToday(ctx context.Context, userID uint, match store.Match, day time.Time) (bool, error) {
	if err := m.fail["ExistsToday"]; err != nil {
		return false, err
	}
	for _, n := range m.notifications {
		if n.userID != userID || !models.Today(n.created).Equal(models.Today(day)) {
			continue
		}
		all := true
		for _, part := range match {
			if !strings.Contains(strings.ToLower(n.message), strings.ToLower(part)) {
				all = false
				break
			}
		}
		if all {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertNotification(ctx context.Context, userID uint, message string, severity models.Severity) error {
	if err := m.fail["InsertNotification"]; err != nil {
		return err
	}
	m.notifications = append(m.notifications, notification{
		userID:   userID,
		message:  message,
		severity: severity,
		created:  m.now(),
	})
	return nil
}
