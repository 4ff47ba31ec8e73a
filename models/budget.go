package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout 预算月份格式 YYYY-MM
const MonthLayout = "2006-01"

// Budget 月度分类预算
// 同一用户同一类别同一月份只允许一条，由插入前的存在性检查保证
type Budget struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index:idx_budget_period;not null"`
	Category    string          `json:"category" gorm:"size:50;index:idx_budget_period;not null"`
	Month       string          `json:"month" gorm:"type:varchar(7);index:idx_budget_period;not null"`
	LimitAmount decimal.Decimal `json:"limit_amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	User        User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}

// NormalizeCategory 类别匹配不区分大小写，统一存小写
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// MonthOf 返回日期所在月份 YYYY-MM
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthRange 返回月份的 [起, 止) 区间
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(MonthLayout, month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
