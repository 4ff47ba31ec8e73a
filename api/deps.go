package api

import (
	"context"

	"finance-guru/alert"
	"finance-guru/database"
	"finance-guru/models"
	"finance-guru/service"
	"finance-guru/store"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks finance-guru/api Alerts,Mailer

// Alerts 处理器用到的提醒引擎能力，*alert.Engine 实现了它
type Alerts interface {
	AfterExpense(ctx context.Context, tx *models.Transaction) *alert.Alert
	AfterIncome(ctx context.Context, userID uint) *alert.Alert
	OnDashboard(ctx context.Context, userID uint) *alert.Alert
	OnBillsView(ctx context.Context, userID uint) *alert.Alert
	OnBudgetsView(ctx context.Context, userID uint) *alert.Alert
	AfterBudgetChange(ctx context.Context, userID uint, category, month string) *alert.Alert
	BudgetStatus(ctx context.Context, userID uint, month string) ([]alert.BudgetUsage, error)
	CurrentBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	GoalProgress(ctx context.Context, userID uint, goal *models.Goal, previous, current decimal.Decimal) *alert.Alert
	MarkBillPaid(ctx context.Context, userID, billID uint) (*alert.PaymentResult, error)
	MarkBillUnpaid(ctx context.Context, userID, billID uint) (*models.Bill, error)
	Announce(ctx context.Context, userID uint, message string, severity models.Severity)
}

// Mailer 发送密码重置邮件
type Mailer interface {
	Enabled() bool
	SendPasswordResetEmail(toEmail, username, resetLink string) error
}

var (
	_ Alerts = (*alert.Engine)(nil)
	_ Mailer = (*service.EmailService)(nil)
)

// ledger 每次请求按当前 database.DB 构造存储，测试替换 DB 后立即生效
func ledger() *store.Store {
	return store.New(database.DB)
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
