package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal 储蓄目标
type Goal struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	Name          string          `json:"name" gorm:"size:100;not null"`
	TargetAmount  decimal.Decimal `json:"target_amount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"type:decimal(12,2);not null;default:0"`
	Deadline      *time.Time      `json:"deadline" gorm:"type:date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	User          User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}

// IsComplete 当前金额达到目标
func (g *Goal) IsComplete() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining 距离目标还差多少，已完成返回 0
func (g *Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Percentage 完成百分比，保留一位小数
func (g *Goal) Percentage() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// CrossesTarget 判断 previous -> current 是否由未完成跨越到已完成
// 只看状态迁移，已完成的目标继续存入不会再次触发
func CrossesTarget(previous, current, target decimal.Decimal) bool {
	return previous.LessThan(target) && current.GreaterThanOrEqual(target)
}
