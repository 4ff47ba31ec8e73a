package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"finance-guru/alert"
	"finance-guru/middleware"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DateLayout 接口中的日期格式
const DateLayout = "2006-01-02"

// TransactionHandler 收支流水处理器
type TransactionHandler struct {
	alerts Alerts
	now    func() time.Time
}

// NewTransactionHandler 创建收支流水处理器
func NewTransactionHandler(alerts Alerts) *TransactionHandler {
	return &TransactionHandler{alerts: alerts, now: time.Now}
}

// CreateTransactionRequest 创建流水请求
type CreateTransactionRequest struct {
	Type          string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Category      string  `json:"category" binding:"required,max=50" example:"Food"`
	Amount        float64 `json:"amount" binding:"required,gt=0" example:"250"`
	Description   string  `json:"description" binding:"max=255" example:"Dinner"`
	PaymentMethod string  `json:"payment_method" binding:"max=50" example:"UPI"`
	Date          string  `json:"date" example:"2024-03-15"` // 为空时取当天
}

// TransactionResult 创建流水的结果，alert 为本次触发的第一条提醒
type TransactionResult struct {
	Transaction models.Transaction `json:"transaction"`
	Alert       *alert.Alert       `json:"alert,omitempty"`
}

// TransactionList 某月流水及预算使用情况
type TransactionList struct {
	Month        string              `json:"month"`
	Income       decimal.Decimal     `json:"income"`
	Expense      decimal.Decimal     `json:"expense"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []alert.BudgetUsage `json:"budgets"`
}

// Create 记一笔收支
// @Summary 创建收支流水
// @Description 记录收入或支出。支出会依次检查预算、异常消费和余额，收入只检查余额
// @Tags 收支流水
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "流水信息"
// @Success 200 {object} Response{data=TransactionResult} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		BadRequest(c, "类别不能为空")
		return
	}

	date := models.Today(h.now())
	if req.Date != "" {
		d, err := time.ParseInLocation(DateLayout, req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		date = d
	}

	tx := models.Transaction{
		UserID:        userID,
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		Amount:        decimal.NewFromFloat(req.Amount).Round(2),
		Description:   strings.TrimSpace(req.Description),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Date:          date,
	}
	if err := ledger().CreateTransaction(c.Request.Context(), &tx); err != nil {
		serverError(c, err, "创建流水失败")
		return
	}

	var triggered *alert.Alert
	if tx.Type == models.TransactionExpense {
		triggered = h.alerts.AfterExpense(c.Request.Context(), &tx)
	} else {
		triggered = h.alerts.AfterIncome(c.Request.Context(), userID)
	}

	SuccessWithMessage(c, "创建成功", TransactionResult{Transaction: tx, Alert: triggered})
}

// List 某月流水
// @Summary 获取流水列表
// @Description 获取指定月份未删除的流水，并附带该月预算使用情况
// @Tags 收支流水
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 YYYY-MM，默认本月"
// @Success 200 {object} Response{data=TransactionList} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	month := c.DefaultQuery("month", models.MonthOf(h.now()))
	if _, _, err := models.MonthRange(month); err != nil {
		BadRequest(c, "月份格式错误，应为: 2006-01")
		return
	}

	list, err := ledger().ListTransactions(ctx, userID, month)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range list {
		if t.Type == models.TransactionIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	budgets, err := h.alerts.BudgetStatus(ctx, userID, month)
	if err != nil {
		serverError(c, err, "查询预算失败")
		return
	}

	Success(c, TransactionList{
		Month:        month,
		Income:       income,
		Expense:      expense,
		Transactions: list,
		Budgets:      budgets,
	})
}

// Delete 删除流水
// @Summary 删除流水
// @Description 软删除：余额不再计入，当月预算统计仍计入
// @Tags 收支流水
// @Produce json
// @Security BearerAuth
// @Param id path int true "流水ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ledger().DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "记录不存在")
			return
		}
		serverError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// parseID 解析路径参数 id，失败时已写入 400
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}
