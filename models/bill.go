package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence 账单周期
type Recurrence string

const (
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// IsValid 校验周期取值
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// BillStatus 账单状态
//
//	pending -> paid          非周期账单支付后终结
//	pending -> paid_rolled   周期账单支付后终结，同时生成下一期 pending 账单
//	paid    -> pending       撤销支付
type BillStatus string

const (
	BillPending    BillStatus = "pending"
	BillPaid       BillStatus = "paid"
	BillPaidRolled BillStatus = "paid_rolled"
)

// DefaultBillCategory 账单默认类别
const DefaultBillCategory = "Other"

// Bill 账单
type Bill struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	DueDate     time.Time       `json:"due_date" gorm:"type:date;index;not null"`
	Category    string          `json:"category" gorm:"size:50;default:Other"`
	IsRecurring bool            `json:"is_recurring" gorm:"default:false"`
	Recurrence  Recurrence      `json:"recurrence" gorm:"type:varchar(10);default:monthly"`
	Status      BillStatus      `json:"status" gorm:"type:varchar(12);index;default:pending"`
	PaidDate    *time.Time      `json:"paid_date" gorm:"type:date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	User        User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Bill) TableName() string {
	return "bills"
}

// IsPaid 已支付（含已滚动）
func (b *Bill) IsPaid() bool {
	return b.Status == BillPaid || b.Status == BillPaidRolled
}

// DaysUntil 距离到期日的天数，负数表示逾期
func (b *Bill) DaysUntil(today time.Time) int {
	return DaysBetween(today, b.DueDate)
}

// PaidStatus 支付后应进入的状态
func (b *Bill) PaidStatus() BillStatus {
	if b.IsRecurring {
		return BillPaidRolled
	}
	return BillPaid
}

// NextOccurrence 周期账单的下一期，非周期账单返回 nil
func (b *Bill) NextOccurrence() *Bill {
	if !b.IsRecurring {
		return nil
	}
	return &Bill{
		UserID:      b.UserID,
		Name:        b.Name,
		Amount:      b.Amount,
		DueDate:     AdvanceDate(b.DueDate, b.Recurrence),
		Category:    b.Category,
		IsRecurring: true,
		Recurrence:  b.Recurrence,
		Status:      BillPending,
	}
}

// AdvanceDate 按周期推进日期，月末日期截断到目标月最后一天（1-31 -> 2-28/29）
func AdvanceDate(d time.Time, r Recurrence) time.Time {
	switch r {
	case RecurrenceWeekly:
		return d.AddDate(0, 0, 7)
	case RecurrenceYearly:
		return addMonthsClamped(d, 12)
	default:
		return addMonthsClamped(d, 1)
	}
}

func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// Today 当天零点
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// DaysBetween 两个日期相差的自然日，忽略时分秒
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
