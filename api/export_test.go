package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"finance-guru/alert"
	"finance-guru/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportTransactionRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(transactionColumns).
		AddRow(2, 1, "expense", "food", "250.50", "Dinner, with friends", "UPI", day(2024, 3, 2), now, now, nil).
		AddRow(1, 1, "income", "salary", "1000.00", "", "Bank", day(2024, 3, 1), now, now, nil)
}

func TestExportHandler_CSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportTransactionRows())

	r := newRouter(1)
	r.GET("/export/csv", NewExportHandler(newMockAlerts(t)).ExportCSV)
	w := doRequest(r, "GET", "/export/csv?start_time=2024-03-01&end_time=2024-03-31", "")

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions_2024-03-01_2024-03-31.csv")

	body := strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF")
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"2", "2024-03-02", "expense", "food", "250.50", "Dinner, with friends", "UPI"}, records[1])
	assert.Equal(t, "1000.00", records[2][4])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_MissingRange(t *testing.T) {
	r := newRouter(1)
	r.GET("/export/csv", NewExportHandler(newMockAlerts(t)).ExportCSV)

	w := doRequest(r, "GET", "/export/csv?start_time=2024-03-01", "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "请提供开始时间和结束时间", decode(t, w)["message"])

	w = doRequest(r, "GET", "/export/csv?start_time=2024-03-31&end_time=2024-03-01", "")
	assert.Equal(t, 400, w.Code)

	w = doRequest(r, "GET", "/export/csv?start_time=2024/03/01&end_time=2024-03-31", "")
	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_JSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportTransactionRows())

	r := newRouter(1)
	r.GET("/export/json", NewExportHandler(newMockAlerts(t)).ExportJSON)
	w := doRequest(r, "GET", "/export/json?start_time=2024-03-01&end_time=2024-03-31", "")

	require.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(2), data["total_count"])
	assert.Equal(t, "1000", data["total_income"])
	assert.Equal(t, "250.5", data["total_expense"])
	assert.Len(t, data["transactions"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportWindow_Months(t *testing.T) {
	w := exportWindow{start: day(2024, 1, 20), end: day(2024, 4, 1)}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, w.months())

	w = exportWindow{start: day(2024, 3, 5), end: day(2024, 3, 6)}
	assert.Equal(t, []string{"2024-03"}, w.months())
}

func TestBuildWorkbook(t *testing.T) {
	paid := day(2024, 3, 3)
	rep := report{
		transactions: []models.Transaction{
			{ID: 1, Type: models.TransactionIncome, Category: "salary", Amount: decimal.NewFromInt(1000), Date: day(2024, 3, 1), PaymentMethod: "Bank"},
			{ID: 2, Type: models.TransactionExpense, Category: "food", Amount: decimal.RequireFromString("250.50"), Date: day(2024, 3, 2), PaymentMethod: "UPI"},
		},
		balance: decimal.RequireFromString("5749.50"),
		budgets: []alert.BudgetUsage{{
			Budget:    models.Budget{Category: "food", Month: "2024-03", LimitAmount: decimal.NewFromInt(500)},
			Spent:     decimal.RequireFromString("250.50"),
			Remaining: decimal.RequireFromString("249.50"),
			Percent:   decimal.RequireFromString("50.1"),
		}},
		bills: []models.Bill{
			{Name: "Rent", Amount: decimal.NewFromInt(12000), DueDate: day(2024, 4, 1), Category: "Housing",
				IsRecurring: true, Recurrence: models.RecurrenceMonthly, Status: models.BillPending},
			{Name: "Rent", Amount: decimal.NewFromInt(12000), DueDate: day(2024, 3, 1), Category: "Housing",
				IsRecurring: true, Recurrence: models.RecurrenceMonthly, Status: models.BillPaidRolled, PaidDate: &paid},
		},
	}

	f, err := buildWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{transactionSheet, budgetSheet, billSheet}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "ID", cell(transactionSheet, "A1"))
	assert.Equal(t, "food", cell(transactionSheet, "D3"))
	assert.Equal(t, "Total", cell(transactionSheet, "A4"))
	assert.Equal(t, "749.5", cell(transactionSheet, "E4"))
	assert.Equal(t, "2 records, income 1000.00, expense 250.50", cell(transactionSheet, "F4"))
	assert.Equal(t, "Current balance", cell(transactionSheet, "A5"))
	assert.Equal(t, "5749.5", cell(transactionSheet, "E5"))

	assert.Equal(t, budgetHeaders[0], cell(budgetSheet, "A1"))
	assert.Equal(t, "food", cell(budgetSheet, "A2"))
	assert.Equal(t, "250.5", cell(budgetSheet, "D2"))
	assert.Equal(t, "249.5", cell(budgetSheet, "E2"))
	assert.Equal(t, "50.1", cell(budgetSheet, "F2"))

	assert.Equal(t, "Bill Name", cell(billSheet, "A1"))
	assert.Equal(t, "monthly", cell(billSheet, "F2"))
	assert.Equal(t, "pending", cell(billSheet, "G2"))
	assert.Equal(t, "", cell(billSheet, "H2"))
	assert.Equal(t, "paid_rolled", cell(billSheet, "G3"))
	assert.Equal(t, "2024-03-03", cell(billSheet, "H3"))
}

func TestBuildWorkbook_OmitsEmptySheets(t *testing.T) {
	f, err := buildWorkbook(report{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{transactionSheet}, f.GetSheetList())
	total, _ := f.GetCellValue(transactionSheet, "A2")
	assert.Equal(t, "Total", total)
}

func TestExportHandler_Excel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportTransactionRows())
	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `bills`").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow(5, 1, "Internet", "799.00", day(2024, 3, 20), "Utilities", true, "monthly", "pending", nil, now, now))

	gomock.InOrder(
		alerts.EXPECT().CurrentBalance(gomock.Any(), uint(1)).Return(decimal.RequireFromString("4200.75"), nil),
		alerts.EXPECT().BudgetStatus(gomock.Any(), uint(1), "2024-02").Return(nil, nil),
		alerts.EXPECT().BudgetStatus(gomock.Any(), uint(1), "2024-03").Return([]alert.BudgetUsage{{
			Budget:    models.Budget{Category: "food", Month: "2024-03", LimitAmount: decimal.NewFromInt(1000)},
			Spent:     decimal.RequireFromString("250.50"),
			Remaining: decimal.RequireFromString("749.50"),
			Percent:   decimal.RequireFromString("25.1"),
		}}, nil),
	)

	r := newRouter(1)
	r.GET("/export/excel", NewExportHandler(alerts).ExportExcel)
	w := doRequest(r, "GET", "/export/excel?start_time=2024-02-15&end_time=2024-03-31", "")

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "finance_report_2024-02-15_2024-03-31.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{transactionSheet, budgetSheet, billSheet}, f.GetSheetList())
	balance, _ := f.GetCellValue(transactionSheet, "E5")
	assert.Equal(t, "4200.75", balance)
	bill, _ := f.GetCellValue(billSheet, "A2")
	assert.Equal(t, "Internet", bill)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_Excel_BalanceFailure(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(exportTransactionRows())
	alerts.EXPECT().CurrentBalance(gomock.Any(), uint(1)).Return(decimal.Zero, errors.New("store: sum income: connection reset"))
	alerts.EXPECT().BudgetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	r := newRouter(1)
	r.GET("/export/excel", NewExportHandler(alerts).ExportExcel)
	w := doRequest(r, "GET", "/export/excel?start_time=2024-03-01&end_time=2024-03-31", "")

	assert.Equal(t, 500, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
