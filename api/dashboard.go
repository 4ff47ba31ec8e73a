package api

import (
	"time"

	"finance-guru/alert"
	"finance-guru/middleware"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	recentTransactionLimit = 5
	trendMonths            = 12
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	alerts Alerts
	now    func() time.Time
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(alerts Alerts) *DashboardHandler {
	return &DashboardHandler{alerts: alerts, now: time.Now}
}

// Dashboard 仪表盘数据
type Dashboard struct {
	Month              string                `json:"month"`
	Balance            decimal.Decimal       `json:"balance"`
	MonthIncome        decimal.Decimal       `json:"month_income"`
	MonthExpense       decimal.Decimal       `json:"month_expense"`
	RecentTransactions []models.Transaction  `json:"recent_transactions"`
	CategoryExpenses   []store.CategoryTotal `json:"category_expenses"`
	Monthly            []store.MonthlyTotal  `json:"monthly"`
	Bills              BillSummary           `json:"bills"`
	Goals              []GoalSummary         `json:"goals"`
	Alert              *alert.Alert          `json:"alert,omitempty"`
}

// Get 仪表盘
// @Summary 获取仪表盘
// @Description 检查目标截止、账单到期与余额提醒后，返回余额、本月收支、最近流水、分类支出、近 12 个月趋势、账单与目标概况。余额计算失败时返回 500，不以 0 代替
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=Dashboard} "获取成功"
// @Failure 500 {object} Response "余额计算失败"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	now := h.now()

	triggered := h.alerts.OnDashboard(ctx, userID)

	balance, err := h.alerts.CurrentBalance(ctx, userID)
	if err != nil {
		serverError(c, err, "余额计算失败")
		return
	}

	month := models.MonthOf(now)
	start, end, _ := models.MonthRange(month)
	s := ledger()

	income, err := s.SumBetween(ctx, userID, models.TransactionIncome, start, end)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	expense, err := s.SumBetween(ctx, userID, models.TransactionExpense, start, end)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	recent, err := s.RecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	categories, err := s.CategoryTotals(ctx, userID, start, end)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	monthly, err := s.MonthlyTotals(ctx, userID, now, trendMonths)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	bills, err := s.PendingBills(ctx, userID)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	goalList := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		goalList = append(goalList, summarizeGoal(g))
	}

	Success(c, Dashboard{
		Month:              month,
		Balance:            balance,
		MonthIncome:        income,
		MonthExpense:       expense,
		RecentTransactions: recent,
		CategoryExpenses:   categories,
		Monthly:            monthly,
		Bills:              summarizeBills(bills, now),
		Goals:              goalList,
		Alert:              triggered,
	})
}
