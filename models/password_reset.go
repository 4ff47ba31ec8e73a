package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// PasswordResetTTL 重置令牌有效期
const PasswordResetTTL = 30 * time.Minute

// PasswordReset 密码重置令牌
// 令牌落库并带过期时间，每次申请重置时清理过期记录，不在进程内存里保存
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:64;not null"`
	Email     string    `json:"email" gorm:"size:100;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (PasswordReset) TableName() string {
	return "password_resets"
}

// 令牌状态错误
var (
	ErrResetUsed    = errors.New("reset token already used")
	ErrResetExpired = errors.New("reset token expired")
)

// NewPasswordReset 为用户生成一条新的重置令牌
func NewPasswordReset(user *User, now time.Time) (*PasswordReset, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return &PasswordReset{
		UserID:    user.ID,
		Token:     hex.EncodeToString(b),
		Email:     user.Email,
		ExpiresAt: now.Add(PasswordResetTTL),
	}, nil
}

// Check 令牌在 now 时刻能否使用；到期那一刻仍然有效
func (p *PasswordReset) Check(now time.Time) error {
	if p.Used {
		return ErrResetUsed
	}
	if now.After(p.ExpiresAt) {
		return ErrResetExpired
	}
	return nil
}
