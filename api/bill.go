package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-guru/alert"
	"finance-guru/middleware"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// dueSoonDays 账单页“即将到期”计数的天数
const dueSoonDays = 7

// BillHandler 账单处理器
type BillHandler struct {
	alerts Alerts
	now    func() time.Time
}

// NewBillHandler 创建账单处理器
func NewBillHandler(alerts Alerts) *BillHandler {
	return &BillHandler{alerts: alerts, now: time.Now}
}

// CreateBillRequest 创建账单请求
type CreateBillRequest struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Rent"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"15000"`
	DueDate     string  `json:"due_date" binding:"required" example:"2024-03-31"`
	Category    string  `json:"category" binding:"max=50" example:"Housing"`
	IsRecurring bool    `json:"is_recurring" example:"true"`
	Recurrence  string  `json:"recurrence" binding:"omitempty,oneof=weekly monthly yearly" example:"monthly"`
}

// BillSummary 账单统计
type BillSummary struct {
	Pending       int             `json:"pending"`
	Overdue       int             `json:"overdue"`
	DueSoon       int             `json:"due_soon"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// BillView 账单页数据
type BillView struct {
	Bills   []models.Bill `json:"bills"`
	Summary BillSummary   `json:"summary"`
	Alert   *alert.Alert  `json:"alert,omitempty"`
}

// summarizeBills 统计未支付账单：逾期、即将到期与待付总额
func summarizeBills(bills []models.Bill, today time.Time) BillSummary {
	sum := BillSummary{PendingAmount: decimal.Zero}
	for i := range bills {
		b := &bills[i]
		if b.IsPaid() {
			continue
		}
		sum.Pending++
		sum.PendingAmount = sum.PendingAmount.Add(b.Amount)
		days := b.DaysUntil(today)
		switch {
		case days < 0:
			sum.Overdue++
		case days <= dueSoonDays:
			sum.DueSoon++
		}
	}
	return sum
}

// List 全部账单
// @Summary 获取账单
// @Description 加载前检查目标截止与账单到期提醒
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=BillView} "获取成功"
// @Router /api/v1/bills [get]
func (h *BillHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	triggered := h.alerts.OnBillsView(ctx, userID)
	bills, err := ledger().ListBills(ctx, userID)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}

	Success(c, BillView{
		Bills:   bills,
		Summary: summarizeBills(bills, h.now()),
		Alert:   triggered,
	})
}

// Create 新建账单
// @Summary 新建账单
// @Tags 账单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBillRequest true "账单信息"
// @Success 200 {object} Response{data=models.Bill} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		BadRequest(c, "账单名称不能为空")
		return
	}
	due, err := time.ParseInLocation(DateLayout, req.DueDate, time.Local)
	if err != nil {
		BadRequest(c, "到期日期格式错误，应为: 2006-01-02")
		return
	}

	bill := models.Bill{
		UserID:      userID,
		Name:        name,
		Amount:      decimal.NewFromFloat(req.Amount).Round(2),
		DueDate:     due,
		Category:    strings.TrimSpace(req.Category),
		IsRecurring: req.IsRecurring,
		Recurrence:  models.Recurrence(req.Recurrence),
	}
	if err := ledger().CreateBill(ctx, &bill); err != nil {
		serverError(c, err, "创建账单失败")
		return
	}

	h.alerts.Announce(ctx, userID,
		fmt.Sprintf("Bill added: %s (%s) due on %s", bill.Name, rupees(bill.Amount), bill.DueDate.Format(DateLayout)),
		models.SeverityInfo)

	SuccessWithMessage(c, "创建成功", bill)
}

// Pay 支付账单
// @Summary 支付账单
// @Description 周期账单支付后自动生成下一期；非待支付状态返回 409
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Success 200 {object} Response{data=alert.PaymentResult} "支付成功"
// @Failure 404 {object} Response "账单不存在"
// @Failure 409 {object} Response "账单状态不允许支付"
// @Router /api/v1/bills/{id}/pay [post]
func (h *BillHandler) Pay(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.alerts.MarkBillPaid(c.Request.Context(), userID, id)
	if err != nil {
		billError(c, err, "账单已支付")
		return
	}

	SuccessWithMessage(c, "支付成功", result)
}

// Unpay 撤销支付
// @Summary 撤销账单支付
// @Description 仅非周期的已支付账单可撤销
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Success 200 {object} Response{data=models.Bill} "已撤销"
// @Failure 404 {object} Response "账单不存在"
// @Failure 409 {object} Response "账单状态不允许撤销"
// @Router /api/v1/bills/{id}/unpay [post]
func (h *BillHandler) Unpay(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	bill, err := h.alerts.MarkBillUnpaid(c.Request.Context(), userID, id)
	if err != nil {
		billError(c, err, "该账单不能撤销支付")
		return
	}

	SuccessWithMessage(c, "已撤销", bill)
}

// Delete 删除账单
// @Summary 删除账单
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "账单ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "账单不存在"
// @Router /api/v1/bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ledger().DeleteBill(c.Request.Context(), userID, id); err != nil {
		billError(c, err, "")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

func billError(c *gin.Context, err error, conflict string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "账单不存在")
	case errors.Is(err, store.ErrInvalidBillTransition):
		Conflict(c, conflict)
	default:
		serverError(c, err, "操作失败")
	}
}
