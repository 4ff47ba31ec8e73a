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

// BudgetHandler 预算处理器
type BudgetHandler struct {
	alerts Alerts
	now    func() time.Time
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler(alerts Alerts) *BudgetHandler {
	return &BudgetHandler{alerts: alerts, now: time.Now}
}

// CreateBudgetRequest 创建预算请求
type CreateBudgetRequest struct {
	Category    string  `json:"category" binding:"required,max=50" example:"Food"`
	LimitAmount float64 `json:"limit_amount" binding:"required,gt=0" example:"1000"`
	Month       string  `json:"month" example:"2024-03"` // 为空时取本月
}

// UpdateBudgetRequest 修改预算额度请求
type UpdateBudgetRequest struct {
	LimitAmount float64 `json:"limit_amount" binding:"required,gt=0" example:"1500"`
}

// BudgetView 预算页数据
type BudgetView struct {
	Month   string              `json:"month"`
	Budgets []alert.BudgetUsage `json:"budgets"`
	Alert   *alert.Alert        `json:"alert,omitempty"`
}

// BudgetResult 预算变更结果
type BudgetResult struct {
	Budget models.Budget `json:"budget"`
	Alert  *alert.Alert  `json:"alert,omitempty"`
}

// List 本月预算
// @Summary 获取本月预算
// @Description 清理往月预算后，按 50/80/100% 分档检查本月每个预算并返回使用情况
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=BudgetView} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	month := models.MonthOf(h.now())

	triggered := h.alerts.OnBudgetsView(ctx, userID)
	usages, err := h.alerts.BudgetStatus(ctx, userID, month)
	if err != nil {
		serverError(c, err, "查询预算失败")
		return
	}

	Success(c, BudgetView{Month: month, Budgets: usages, Alert: triggered})
}

// Create 新建预算
// @Summary 新建预算
// @Description 同一类别同一月份只能有一个预算，重复时返回 409
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=BudgetResult} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 409 {object} Response "预算已存在"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		BadRequest(c, "类别不能为空")
		return
	}
	month := req.Month
	if month == "" {
		month = models.MonthOf(h.now())
	}
	if _, _, err := models.MonthRange(month); err != nil {
		BadRequest(c, "月份格式错误，应为: 2006-01")
		return
	}

	budget := models.Budget{
		UserID:      userID,
		Category:    req.Category,
		Month:       month,
		LimitAmount: decimal.NewFromFloat(req.LimitAmount).Round(2),
	}
	if err := ledger().CreateBudget(ctx, &budget); err != nil {
		if errors.Is(err, store.ErrDuplicateBudget) {
			Conflict(c, "该类别本月已设置预算，请直接修改额度")
			return
		}
		serverError(c, err, "创建预算失败")
		return
	}

	h.alerts.Announce(ctx, userID,
		fmt.Sprintf("Budget set for %s: %s for %s", budget.Category, rupees(budget.LimitAmount), budget.Month),
		models.SeverityInfo)
	triggered := h.alerts.AfterBudgetChange(ctx, userID, budget.Category, budget.Month)

	SuccessWithMessage(c, "创建成功", BudgetResult{Budget: budget, Alert: triggered})
}

// Update 修改预算额度
// @Summary 修改预算额度
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body UpdateBudgetRequest true "新额度"
// @Success 200 {object} Response{data=BudgetResult} "修改成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	budget, err := ledger().UpdateBudgetLimit(ctx, userID, id, decimal.NewFromFloat(req.LimitAmount).Round(2))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "预算不存在")
			return
		}
		serverError(c, err, "修改预算失败")
		return
	}

	triggered := h.alerts.AfterBudgetChange(ctx, userID, budget.Category, budget.Month)
	SuccessWithMessage(c, "修改成功", BudgetResult{Budget: *budget, Alert: triggered})
}

// Delete 删除预算
// @Summary 删除预算
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ledger().DeleteBudget(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "预算不存在")
			return
		}
		serverError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
