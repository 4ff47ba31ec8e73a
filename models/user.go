package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User 用户模型，InitialBalance 是余额计算的起点
type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Username       string          `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email          string          `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password       string          `json:"-" gorm:"size:255;not null"`
	InitialBalance decimal.Decimal `json:"initial_balance" gorm:"type:decimal(12,2);not null;default:0"`
	Phone          string          `json:"phone" gorm:"size:20"`
	JobTitle       string          `json:"job_title" gorm:"size:100"`
	Bio            string          `json:"bio" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
