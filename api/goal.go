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

// GoalHandler 储蓄目标处理器
type GoalHandler struct {
	alerts Alerts
	now    func() time.Time
}

// NewGoalHandler 创建储蓄目标处理器
func NewGoalHandler(alerts Alerts) *GoalHandler {
	return &GoalHandler{alerts: alerts, now: time.Now}
}

// CreateGoalRequest 创建目标请求
type CreateGoalRequest struct {
	Name          string  `json:"name" binding:"required,max=100" example:"Emergency fund"`
	TargetAmount  float64 `json:"target_amount" binding:"required,gt=0" example:"50000"`
	CurrentAmount float64 `json:"current_amount" binding:"gte=0" example:"5000"`
	Deadline      string  `json:"deadline" example:"2024-12-31"` // 可选
}

// ContributeRequest 存取请求
type ContributeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"1000"`
	Action string  `json:"action" binding:"omitempty,oneof=deposit withdraw" example:"deposit"` // 默认 deposit
}

// GoalSummary 目标及进度
type GoalSummary struct {
	models.Goal
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Completed  bool            `json:"completed"`
}

// GoalResult 目标变更结果
type GoalResult struct {
	Goal  GoalSummary  `json:"goal"`
	Alert *alert.Alert `json:"alert,omitempty"`
}

func summarizeGoal(g models.Goal) GoalSummary {
	return GoalSummary{
		Goal:       g,
		Remaining:  g.Remaining(),
		Percentage: g.Percentage(),
		Completed:  g.IsComplete(),
	}
}

// List 全部目标
// @Summary 获取储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]GoalSummary} "获取成功"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	goals, err := ledger().ListGoals(c.Request.Context(), userID)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}

	list := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		list = append(list, summarizeGoal(g))
	}
	Success(c, list)
}

// Create 新建目标
// @Summary 新建储蓄目标
// @Description 初始金额大于 0 时同时记一笔类别为 Financial Goal 的支出
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=GoalResult} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		BadRequest(c, "目标名称不能为空")
		return
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  decimal.NewFromFloat(req.TargetAmount).Round(2),
		CurrentAmount: decimal.NewFromFloat(req.CurrentAmount).Round(2),
	}
	if req.Deadline != "" {
		d, err := time.ParseInLocation(DateLayout, req.Deadline, time.Local)
		if err != nil {
			BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
			return
		}
		goal.Deadline = &d
	}

	posted, err := ledger().CreateGoal(ctx, &goal, h.now())
	if err != nil {
		serverError(c, err, "创建目标失败")
		return
	}

	h.alerts.Announce(ctx, userID,
		fmt.Sprintf("New goal created: %s (target %s)", goal.Name, rupees(goal.TargetAmount)),
		models.SeverityInfo)
	ledgerAlert := h.afterPosted(c, posted)
	triggered := firstAlert(h.alerts.GoalProgress(ctx, userID, &goal, decimal.Zero, goal.CurrentAmount), ledgerAlert)

	SuccessWithMessage(c, "创建成功", GoalResult{Goal: summarizeGoal(goal), Alert: triggered})
}

// Contribute 存入或取出
// @Summary 存入或取出目标金额
// @Description 存入记一笔支出，取出记一笔收入，并按记账规则检查预算与余额；首次达到目标时产生祝贺通知
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body ContributeRequest true "金额与方向"
// @Success 200 {object} Response{data=GoalResult} "操作成功"
// @Failure 400 {object} Response "取出金额超过已存金额"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	s := ledger()
	goal, err := s.FindGoal(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "目标不存在")
			return
		}
		serverError(c, err, "查询目标失败")
		return
	}

	delta := decimal.NewFromFloat(req.Amount).Round(2)
	if req.Action == "withdraw" {
		if delta.GreaterThan(goal.CurrentAmount) {
			BadRequest(c, "取出金额不能超过已存金额")
			return
		}
		delta = delta.Neg()
	}

	previous, posted, err := s.AdjustGoal(ctx, goal, delta, h.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "目标不存在")
			return
		}
		serverError(c, err, "操作失败")
		return
	}

	ledgerAlert := h.afterPosted(c, posted)
	triggered := firstAlert(h.alerts.GoalProgress(ctx, userID, goal, previous, goal.CurrentAmount), ledgerAlert)
	SuccessWithMessage(c, "操作成功", GoalResult{Goal: summarizeGoal(*goal), Alert: triggered})
}

// afterPosted 目标存取记下的流水与手工记账一样触发提醒：存入按支出，取出按收入
func (h *GoalHandler) afterPosted(c *gin.Context, posted *models.Transaction) *alert.Alert {
	if posted == nil {
		return nil
	}
	if posted.Type == models.TransactionIncome {
		return h.alerts.AfterIncome(c.Request.Context(), posted.UserID)
	}
	return h.alerts.AfterExpense(c.Request.Context(), posted)
}

// firstAlert 返回第一个非空提醒
func firstAlert(alerts ...*alert.Alert) *alert.Alert {
	for _, a := range alerts {
		if a != nil {
			return a
		}
	}
	return nil
}

// Delete 删除目标
// @Summary 删除储蓄目标
// @Description 已记录的关联流水保留
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ledger().DeleteGoal(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "目标不存在")
			return
		}
		serverError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
