package models

import "time"

// Severity 通知级别
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeveritySuccess Severity = "success"
)

// Notification 站内通知
// 只追加；除已读状态和用户主动删除外不做修改。Message 同时充当当天去重的匹配依据
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index:idx_notification_user_day;not null"`
	Message   string    `json:"message" gorm:"size:255;not null"`
	Type      Severity  `json:"type" gorm:"type:varchar(10);default:info"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_notification_user_day"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Notification) TableName() string {
	return "notifications"
}
