package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finance-guru/alert"
	"finance-guru/middleware"
	"finance-guru/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	alerts Alerts
}

// NewExportHandler 创建导出处理器；Excel 报表的余额与预算进度来自提醒引擎
func NewExportHandler(alerts Alerts) *ExportHandler {
	return &ExportHandler{alerts: alerts}
}

var exportHeaders = []string{"ID", "Date", "Type", "Category", "Amount", "Description", "Payment Method"}

// exportRange 解析 start_time / end_time，结束日期当天包含在内。失败时已写入 400
func exportRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始时间和结束时间")
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation(DateLayout, startStr, time.Local)
	if err != nil {
		BadRequest(c, "开始时间格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation(DateLayout, endStr, time.Local)
	if err != nil {
		BadRequest(c, "结束时间格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		BadRequest(c, "结束时间不能早于开始时间")
		return time.Time{}, time.Time{}, false
	}
	return start, end.AddDate(0, 0, 1), true
}

// exportWindow 导出区间，end 为结束日期次日零点
type exportWindow struct {
	start, end time.Time
	suffix     string
}

// months 区间覆盖的全部月份，格式 2006-01
func (w exportWindow) months() []string {
	var out []string
	last := w.end.AddDate(0, 0, -1)
	for m := time.Date(w.start.Year(), w.start.Month(), 1, 0, 0, 0, 0, time.Local); !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, m.Format(models.MonthLayout))
	}
	return out
}

// exportRows 读取导出区间内的流水，失败时已写入响应
func exportRows(c *gin.Context) ([]models.Transaction, exportWindow, bool) {
	start, end, ok := exportRange(c)
	if !ok {
		return nil, exportWindow{}, false
	}
	list, err := ledger().TransactionsBetween(c.Request.Context(), middleware.GetCurrentUserID(c), start, end)
	if err != nil {
		serverError(c, err, "查询数据失败")
		return nil, exportWindow{}, false
	}
	return list, exportWindow{
		start:  start,
		end:    end,
		suffix: fmt.Sprintf("%s_%s", c.Query("start_time"), c.Query("end_time")),
	}, true
}

func transactionRow(t models.Transaction) []string {
	return []string{
		fmt.Sprintf("%d", t.ID),
		t.Date.Format(DateLayout),
		string(t.Type),
		t.Category,
		t.Amount.StringFixed(2),
		t.Description,
		t.PaymentMethod,
	}
}

// ExportCSV 导出流水为 CSV
// @Summary 导出流水为 CSV
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "开始日期 (2024-01-01)"
// @Param end_time query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	list, window, ok := exportRows(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, t := range list {
		if err := writer.Write(transactionRow(t)); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.csv", window.suffix))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出流水为 JSON
// @Summary 导出流水为 JSON
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param start_time query string true "开始日期 (2024-01-01)"
// @Param end_time query string true "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]models.Transaction} "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	list, _, ok := exportRows(c)
	if !ok {
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

	Success(c, gin.H{
		"start_time":    c.Query("start_time"),
		"end_time":      c.Query("end_time"),
		"total_count":   len(list),
		"total_income":  income,
		"total_expense": expense,
		"transactions":  list,
	})
}

// ExportExcel 导出 Excel 报表
// @Summary 导出 Excel 报表
// @Description 流水明细与当前余额，区间内各月预算进度，以及全部账单
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_time query string true "开始日期 (2024-01-01)"
// @Param end_time query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	list, window, ok := exportRows(c)
	if !ok {
		return
	}
	rep := report{transactions: list}

	var err error
	if rep.balance, err = h.alerts.CurrentBalance(ctx, userID); err != nil {
		serverError(c, err, "查询余额失败")
		return
	}
	for _, month := range window.months() {
		usages, err := h.alerts.BudgetStatus(ctx, userID, month)
		if err != nil {
			serverError(c, err, "查询预算失败")
			return
		}
		rep.budgets = append(rep.budgets, usages...)
	}
	if rep.bills, err = ledger().ListBills(ctx, userID); err != nil {
		serverError(c, err, "查询账单失败")
		return
	}

	f, err := buildWorkbook(rep)
	if err != nil {
		serverError(c, err, "生成 Excel 失败")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		serverError(c, err, "生成 Excel 失败")
		return
	}

	filename := url.PathEscape(fmt.Sprintf("finance_report_%s.xlsx", window.suffix))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// 工作表名
const (
	transactionSheet = "Transactions"
	budgetSheet      = "Budgets"
	billSheet        = "Bills"
)

var (
	budgetHeaders = []string{"Category", "Month", "Limit", "Spent", "Remaining", "Percent"}
	billHeaders   = []string{"Bill Name", "Amount", "Due Date", "Category", "Recurring", "Frequency", "Status", "Paid Date"}
)

// report Excel 报表的数据
type report struct {
	transactions []models.Transaction
	balance      decimal.Decimal
	budgets      []alert.BudgetUsage
	bills        []models.Bill
}

type workbookStyles struct {
	header, data, summary int
}

func newWorkbookStyles(f *excelize.File) workbookStyles {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	var st workbookStyles
	st.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"7269E3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	st.data, _ = f.NewStyle(&excelize.Style{Border: border})
	st.summary, _ = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	return st
}

// writeTable 写表头和数据行，返回下一个空行号
func writeTable(f *excelize.File, sheet string, st workbookStyles, headers []string, width float64, rows [][]interface{}) (int, error) {
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return 0, err
	}
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.header)
	for i, row := range rows {
		r := i + 2
		cell := fmt.Sprintf("A%d", r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, err
		}
		f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, r), st.data)
	}
	return len(rows) + 2, nil
}

// buildWorkbook 流水表带收支合计与当前余额；预算和账单为空时不生成对应工作表
func buildWorkbook(rep report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", transactionSheet); err != nil {
		f.Close()
		return nil, err
	}
	st := newWorkbookStyles(f)

	if err := writeTransactionSheet(f, st, rep); err != nil {
		f.Close()
		return nil, err
	}
	if len(rep.budgets) > 0 {
		if err := writeBudgetSheet(f, st, rep.budgets); err != nil {
			f.Close()
			return nil, err
		}
	}
	if len(rep.bills) > 0 {
		if err := writeBillSheet(f, st, rep.bills); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeTransactionSheet(f *excelize.File, st workbookStyles, rep report) error {
	rows := make([][]interface{}, 0, len(rep.transactions))
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range rep.transactions {
		rows = append(rows, []interface{}{
			t.ID, t.Date.Format(DateLayout), string(t.Type), t.Category,
			t.Amount.InexactFloat64(), t.Description, t.PaymentMethod,
		})
		if t.Type == models.TransactionIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	next, err := writeTable(f, transactionSheet, st, exportHeaders, 14, rows)
	if err != nil {
		return err
	}
	f.SetColWidth(transactionSheet, "F", "F", 36)

	summary := []struct {
		label  string
		amount decimal.Decimal
		note   string
	}{
		{"Total", income.Sub(expense), fmt.Sprintf("%d records, income %s, expense %s",
			len(rep.transactions), income.StringFixed(2), expense.StringFixed(2))},
		{"Current balance", rep.balance, "initial balance + all income - all expenses"},
	}
	for i, row := range summary {
		r := next + i
		f.SetCellValue(transactionSheet, fmt.Sprintf("A%d", r), row.label)
		f.MergeCell(transactionSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("D%d", r))
		f.SetCellValue(transactionSheet, fmt.Sprintf("E%d", r), row.amount.InexactFloat64())
		f.SetCellValue(transactionSheet, fmt.Sprintf("F%d", r), row.note)
		f.MergeCell(transactionSheet, fmt.Sprintf("F%d", r), fmt.Sprintf("G%d", r))
		f.SetCellStyle(transactionSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("G%d", r), st.summary)
	}
	return nil
}

func writeBudgetSheet(f *excelize.File, st workbookStyles, usages []alert.BudgetUsage) error {
	if _, err := f.NewSheet(budgetSheet); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(usages))
	for _, u := range usages {
		rows = append(rows, []interface{}{
			u.Budget.Category, u.Budget.Month, u.Budget.LimitAmount.InexactFloat64(),
			u.Spent.InexactFloat64(), u.Remaining.InexactFloat64(), u.Percent.InexactFloat64(),
		})
	}
	_, err := writeTable(f, budgetSheet, st, budgetHeaders, 14, rows)
	return err
}

func writeBillSheet(f *excelize.File, st workbookStyles, bills []models.Bill) error {
	if _, err := f.NewSheet(billSheet); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(bills))
	for _, b := range bills {
		frequency, paidDate := "", ""
		if b.IsRecurring {
			frequency = string(b.Recurrence)
		}
		if b.PaidDate != nil {
			paidDate = b.PaidDate.Format(DateLayout)
		}
		rows = append(rows, []interface{}{
			b.Name, b.Amount.InexactFloat64(), b.DueDate.Format(DateLayout), b.Category,
			b.IsRecurring, frequency, string(b.Status), paidDate,
		})
	}
	_, err := writeTable(f, billSheet, st, billHeaders, 14, rows)
	return err
}
