package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType 收支类型
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

const (
	// CategoryFinancialGoal 储蓄目标存取款自动生成的流水类别
	CategoryFinancialGoal = "Financial Goal"
	// PaymentMethodCash 默认支付方式
	PaymentMethodCash = "Cash"
	// PaymentMethodSavings 储蓄目标流水的支付方式
	PaymentMethodSavings = "Savings"
)

// Transaction 收支流水
// 删除为软删除：DeletedAt 非空即 is_deleted，余额与列表排除，预算统计仍然计入
type Transaction struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"index;not null"`
	Type          TransactionType `json:"type" gorm:"type:varchar(10);index;not null"`
	Category      string          `json:"category" gorm:"size:50;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description   string          `json:"description" gorm:"size:255"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50;default:Cash"`
	Date          time.Time       `json:"date" gorm:"type:date;index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
	User          User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// IsDeleted 是否已被软删除
func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt.Valid
}
