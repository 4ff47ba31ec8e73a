package api

import (
	"context"
	"testing"
	"time"

	"finance-guru/alert"
	"finance-guru/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionColumns = []string{"id", "user_id", "type", "category", "amount", "description", "payment_method", "date", "created_at", "updated_at", "deleted_at"}

func newTransactionHandler(alerts Alerts) *TransactionHandler {
	h := NewTransactionHandler(alerts)
	h.now = clock
	return h
}

func TestTransactionHandler_CreateExpense(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	alerts.EXPECT().AfterExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) *alert.Alert {
			assert.Equal(t, uint(42), tx.ID)
			assert.Equal(t, uint(1), tx.UserID)
			assert.Equal(t, "Food", tx.Category)
			assert.True(t, decimal.RequireFromString("250.50").Equal(tx.Amount))
			assert.Equal(t, models.Today(fixedNow), tx.Date)
			return &alert.Alert{Rule: alert.RuleBudget, Severity: models.SeverityWarning, Message: "Budget warning: food"}
		})

	r := newRouter(1)
	r.POST("/transactions", newTransactionHandler(alerts).Create)
	w := doRequest(r, "POST", "/transactions", `{"type":"expense","category":" Food ","amount":250.5,"description":"Dinner"}`)

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	tx := data["transaction"].(map[string]interface{})
	assert.Equal(t, "Cash", tx["payment_method"])
	triggered := data["alert"].(map[string]interface{})
	assert.Equal(t, "budget", triggered["rule"])
	assert.Equal(t, "warning", triggered["severity"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_CreateIncome(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	alerts.EXPECT().AfterIncome(gomock.Any(), uint(1)).Return(nil)
	alerts.EXPECT().AfterExpense(gomock.Any(), gomock.Any()).Times(0)

	r := newRouter(1)
	r.POST("/transactions", newTransactionHandler(alerts).Create)
	w := doRequest(r, "POST", "/transactions", `{"type":"income","category":"Salary","amount":50000,"date":"2024-03-01"}`)

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	_, hasAlert := data["alert"]
	assert.False(t, hasAlert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_Invalid(t *testing.T) {
	alerts := newMockAlerts(t)
	r := newRouter(1)
	r.POST("/transactions", newTransactionHandler(alerts).Create)

	cases := []struct {
		name string
		body string
	}{
		{"zero amount", `{"type":"expense","category":"Food","amount":0}`},
		{"negative amount", `{"type":"expense","category":"Food","amount":-5}`},
		{"unknown type", `{"type":"transfer","category":"Food","amount":5}`},
		{"blank category", `{"type":"expense","category":"   ","amount":5}`},
		{"bad date", `{"type":"expense","category":"Food","amount":5,"date":"15/03/2024"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, "POST", "/transactions", tc.body)
			assert.Equal(t, 400, w.Code)
		})
	}
}

func TestTransactionHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(2, 1, "expense", "food", "120.00", "", "Cash", day, day, day, nil).
			AddRow(1, 1, "income", "salary", "1000.00", "", "Cash", day, day, day, nil))

	alerts.EXPECT().BudgetStatus(gomock.Any(), uint(1), "2024-02").
		Return([]alert.BudgetUsage{{
			Budget:    models.Budget{Category: "food", Month: "2024-02", LimitAmount: decimal.NewFromInt(500)},
			Spent:     decimal.NewFromInt(120),
			Remaining: decimal.NewFromInt(380),
			Percent:   decimal.NewFromInt(24),
		}}, nil)

	r := newRouter(1)
	r.GET("/transactions", newTransactionHandler(alerts).List)
	w := doRequest(r, "GET", "/transactions?month=2024-02", "")

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "2024-02", data["month"])
	assert.Equal(t, "1000", data["income"])
	assert.Equal(t, "120", data["expense"])
	assert.Len(t, data["transactions"], 2)
	assert.Len(t, data["budgets"], 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List_BadMonth(t *testing.T) {
	r := newRouter(1)
	r.GET("/transactions", newTransactionHandler(newMockAlerts(t)).List)
	w := doRequest(r, "GET", "/transactions?month=2024-13", "")
	assert.Equal(t, 400, w.Code)
}

func TestTransactionHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := newRouter(1)
	r.DELETE("/transactions/:id", newTransactionHandler(newMockAlerts(t)).Delete)
	w := doRequest(r, "DELETE", "/transactions/9", "")

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := newRouter(1)
	r.DELETE("/transactions/:id", newTransactionHandler(newMockAlerts(t)).Delete)
	w := doRequest(r, "DELETE", "/transactions/9", "")

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "记录不存在", decode(t, w)["message"])
}

func TestTransactionHandler_Delete_InvalidID(t *testing.T) {
	r := newRouter(1)
	r.DELETE("/transactions/:id", newTransactionHandler(newMockAlerts(t)).Delete)
	w := doRequest(r, "DELETE", "/transactions/abc", "")
	assert.Equal(t, 400, w.Code)
}
