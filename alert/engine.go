// Package alert 提醒规则引擎
//
// 每个规则都是持久化状态加当天已有通知的纯函数：每次调用从存储重新推导所需数据，
// 通过 Store.ExistsToday / Store.InsertNotification 保证同一条件每天最多提醒一次。
// 引擎本身无锁、无状态，只持有配置。
package alert

import (
	"context"
	"time"

	"finance-guru/config"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store 规则引擎依赖的存储能力，*store.Store 实现了它
type Store interface {
	CurrentBalance(ctx context.Context, userID uint) (decimal.Decimal, error)

	FindBudget(ctx context.Context, userID uint, category, month string) (*models.Budget, error)
	CategorySpend(ctx context.Context, userID uint, category, month string) (decimal.Decimal, error)
	ListBudgets(ctx context.Context, userID uint, month string) ([]models.Budget, error)
	PurgeBudgetsBefore(ctx context.Context, userID uint, month string) (int64, error)

	CategoryExpenseStats(ctx context.Context, userID uint, category string, since time.Time, excludeID uint) (store.CategoryStats, error)
	DailyExpenseTotals(ctx context.Context, userID uint, since time.Time) ([]store.DailyTotal, error)
	ExpenseTotalOn(ctx context.Context, userID uint, day time.Time) (decimal.Decimal, error)

	GoalsDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Goal, error)

	PendingBills(ctx context.Context, userID uint) ([]models.Bill, error)
	FindBill(ctx context.Context, userID, id uint) (*models.Bill, error)
	PayBill(ctx context.Context, bill *models.Bill, paidOn time.Time) (*models.Bill, error)
	UnpayBill(ctx context.Context, bill *models.Bill) error

	ExistsToday(ctx context.Context, userID uint, match store.Match, day time.Time) (bool, error)
	InsertNotification(ctx context.Context, userID uint, message string, severity models.Severity) error
}

var _ Store = (*store.Store)(nil)

// Rule 产生提醒的规则
type Rule string

const (
	RuleBudget        Rule = "budget"
	RuleBalance       Rule = "balance"
	RuleUnusual       Rule = "unusual_spending"
	RuleDailySpending Rule = "daily_spending"
	RuleGoalDeadline  Rule = "goal_deadline"
	RuleGoalCompleted Rule = "goal_completed"
	RuleBillReminder  Rule = "bill_reminder"
	RuleBillPaid      Rule = "bill_paid"
	RuleAnnouncement  Rule = "announcement"
)

// Alert 一条已写入的提醒
type Alert struct {
	Rule     Rule            `json:"rule"`
	Severity models.Severity `json:"severity"`
	Message  string          `json:"message"`
}

// Engine 提醒规则引擎
type Engine struct {
	store      Store
	thresholds config.AlertsConfig
	logger     zerolog.Logger
	now        func() time.Time
}

// Option 引擎选项
type Option func(*Engine)

// WithLogger 设置日志
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock 设置时钟，测试中固定“今天”
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithThresholds 设置阈值，未配置的字段取默认值
func WithThresholds(t config.AlertsConfig) Option {
	return func(e *Engine) { e.thresholds = t }
}

// NewEngine 创建规则引擎
func NewEngine(s Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.thresholds.ApplyDefaults()
	return e
}

func (e *Engine) today() time.Time {
	return models.Today(e.now())
}

// notify 当天去重后写入通知；match 为空时不去重
// 返回 nil, nil 表示今天已经提醒过
func (e *Engine) notify(ctx context.Context, userID uint, match store.Match, a Alert) (*Alert, error) {
	if len(match) > 0 {
		exists, err := e.store.ExistsToday(ctx, userID, match, e.today())
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, nil
		}
	}
	if err := e.store.InsertNotification(ctx, userID, a.Message, a.Severity); err != nil {
		return nil, err
	}
	e.logger.Debug().
		Uint("user_id", userID).
		Str("rule", string(a.Rule)).
		Str("severity", string(a.Severity)).
		Msg("alert emitted")
	return &a, nil
}

// Announce 写入一条由用户操作直接产生的通知（欢迎、预算设置、账单添加等），不去重
func (e *Engine) Announce(ctx context.Context, userID uint, message string, severity models.Severity) {
	_, err := e.notify(ctx, userID, nil, Alert{Rule: RuleAnnouncement, Severity: severity, Message: message})
	if err != nil {
		e.logFailure(RuleAnnouncement, userID, err)
	}
}

func (e *Engine) logFailure(rule Rule, userID uint, err error) {
	e.logger.Error().
		Err(err).
		Uint("user_id", userID).
		Str("rule", string(rule)).
		Msg("alert evaluation failed")
}

func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

func wholeMoney(d decimal.Decimal) string {
	return "₹" + d.StringFixed(0)
}
