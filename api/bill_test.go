package api

import (
	"testing"
	"time"

	"finance-guru/alert"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var billColumns = []string{"id", "user_id", "name", "amount", "due_date", "category", "is_recurring", "recurrence", "status", "paid_date", "created_at", "updated_at"}

func newBillHandler(alerts Alerts) *BillHandler {
	h := NewBillHandler(alerts)
	h.now = clock
	return h
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestSummarizeBills(t *testing.T) {
	bills := []models.Bill{
		{Name: "Rent", Amount: decimal.NewFromInt(15000), DueDate: day(2024, 3, 10), Status: models.BillPending},
		{Name: "Phone", Amount: decimal.NewFromInt(500), DueDate: day(2024, 3, 15), Status: models.BillPending},
		{Name: "Gym", Amount: decimal.NewFromInt(1200), DueDate: day(2024, 3, 22), Status: models.BillPending},
		{Name: "Insurance", Amount: decimal.NewFromInt(8000), DueDate: day(2024, 4, 30), Status: models.BillPending},
		{Name: "Internet", Amount: decimal.NewFromInt(900), DueDate: day(2024, 3, 1), Status: models.BillPaid},
	}

	sum := summarizeBills(bills, fixedNow)

	assert.Equal(t, 4, sum.Pending)
	assert.Equal(t, 1, sum.Overdue)
	// 今天到期和 7 天后到期都算即将到期
	assert.Equal(t, 2, sum.DueSoon)
	assert.True(t, sum.PendingAmount.Equal(decimal.NewFromInt(24700)))
}

func TestBillHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `bills`").
		WillReturnRows(sqlmock.NewRows(billColumns).
			AddRow(1, 1, "Rent", "15000.00", day(2024, 3, 10), "Housing", true, "monthly", "pending", nil, now, now).
			AddRow(2, 1, "Phone", "500.00", day(2024, 3, 18), "Utilities", false, "monthly", "pending", nil, now, now))

	alerts.EXPECT().OnBillsView(gomock.Any(), uint(1)).
		Return(&alert.Alert{Rule: alert.RuleBillReminder, Severity: models.SeverityDanger, Message: "Overdue: Rent (₹15000.00) was due on 2024-03-10"})

	r := newRouter(1)
	r.GET("/bills", newBillHandler(alerts).List)
	w := doRequest(r, "GET", "/bills", "")

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["pending"])
	assert.Equal(t, float64(1), summary["overdue"])
	assert.Equal(t, float64(1), summary["due_soon"])
	assert.Equal(t, "15500", summary["pending_amount"])
	assert.Len(t, data["bills"], 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	alerts := newMockAlerts(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bills`").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()

	alerts.EXPECT().Announce(gomock.Any(), uint(1), "Bill added: Rent (₹15000.00) due on 2024-03-31", models.SeverityInfo)

	r := newRouter(1)
	r.POST("/bills", newBillHandler(alerts).Create)
	w := doRequest(r, "POST", "/bills", `{"name":"Rent","amount":15000,"due_date":"2024-03-31","is_recurring":true}`)

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "monthly", data["recurrence"])
	assert.Equal(t, "Other", data["category"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillHandler_Create_Invalid(t *testing.T) {
	r := newRouter(1)
	r.POST("/bills", newBillHandler(newMockAlerts(t)).Create)

	w := doRequest(r, "POST", "/bills", `{"name":"Rent","amount":15000,"due_date":"31-03-2024"}`)
	assert.Equal(t, 400, w.Code)

	w = doRequest(r, "POST", "/bills", `{"name":"Rent","amount":15000,"due_date":"2024-03-31","recurrence":"daily"}`)
	assert.Equal(t, 400, w.Code)
}

func TestBillHandler_Pay(t *testing.T) {
	alerts := newMockAlerts(t)
	paid := day(2024, 3, 15)
	alerts.EXPECT().MarkBillPaid(gomock.Any(), uint(1), uint(8)).
		Return(&alert.PaymentResult{
			Bill: &models.Bill{ID: 8, Name: "Rent", Status: models.BillPaidRolled, PaidDate: &paid},
			Next: &models.Bill{ID: 9, Name: "Rent", Status: models.BillPending, DueDate: day(2024, 4, 10)},
		}, nil)

	r := newRouter(1)
	r.POST("/bills/:id/pay", newBillHandler(alerts).Pay)
	w := doRequest(r, "POST", "/bills/8/pay", "")

	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "paid_rolled", data["bill"].(map[string]interface{})["status"])
	assert.Equal(t, "pending", data["next"].(map[string]interface{})["status"])
}

func TestBillHandler_Pay_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", store.ErrNotFound, 404},
		{"already paid", store.ErrInvalidBillTransition, 409},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := newMockAlerts(t)
			alerts.EXPECT().MarkBillPaid(gomock.Any(), uint(1), uint(8)).Return(nil, tc.err)

			r := newRouter(1)
			r.POST("/bills/:id/pay", newBillHandler(alerts).Pay)
			w := doRequest(r, "POST", "/bills/8/pay", "")

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestBillHandler_Unpay(t *testing.T) {
	alerts := newMockAlerts(t)
	alerts.EXPECT().MarkBillUnpaid(gomock.Any(), uint(1), uint(8)).
		Return(&models.Bill{ID: 8, Name: "Phone", Status: models.BillPending}, nil)

	r := newRouter(1)
	r.POST("/bills/:id/unpay", newBillHandler(alerts).Unpay)
	w := doRequest(r, "POST", "/bills/8/unpay", "")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "pending", dataOf(t, w)["status"])
}

func TestBillHandler_Unpay_RolledOver(t *testing.T) {
	alerts := newMockAlerts(t)
	alerts.EXPECT().MarkBillUnpaid(gomock.Any(), uint(1), uint(8)).
		Return(nil, store.ErrInvalidBillTransition)

	r := newRouter(1)
	r.POST("/bills/:id/unpay", newBillHandler(alerts).Unpay)
	w := doRequest(r, "POST", "/bills/8/unpay", "")

	assert.Equal(t, 409, w.Code)
	assert.Equal(t, "该账单不能撤销支付", decode(t, w)["message"])
}

func TestBillHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `bills`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := newRouter(1)
	r.DELETE("/bills/:id", newBillHandler(newMockAlerts(t)).Delete)
	w := doRequest(r, "DELETE", "/bills/8", "")

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
