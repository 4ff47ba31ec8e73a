// Package store 是提醒规则引擎读写关系库的唯一入口
//
// 所有查询都带 context，出错时用 %w 包装原始错误返回；记录不存在统一转换为 ErrNotFound。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-guru/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateBudget 同一用户同一类别同一月份已存在预算
	ErrDuplicateBudget = errors.New("budget already exists for this category and month")
	// ErrInvalidBillTransition 账单当前状态不允许该操作
	ErrInvalidBillTransition = errors.New("invalid bill status transition")
)

// Store 基于 gorm 的存储实现
type Store struct {
	db *gorm.DB
}

// New 创建存储
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB 返回底层连接，供简单 CRUD 复用
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// wrap 统一错误语义：未找到 -> ErrNotFound，其余视为存储不可用
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("store: %s: %w", op, err)
}

// scanDecimal 读取单列聚合结果，NULL 视为 0
func scanDecimal(row *sql.Row) (decimal.Decimal, error) {
	var v decimal.NullDecimal
	if err := row.Scan(&v); err != nil {
		return decimal.Zero, err
	}
	if !v.Valid {
		return decimal.Zero, nil
	}
	return v.Decimal, nil
}

// escapeLike 转义 LIKE 通配符，避免类别或名称里的 % _ 改变匹配语义
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// dayRange 返回某天的 [00:00, 次日 00:00)
func dayRange(day time.Time) (time.Time, time.Time) {
	start := models.Today(day)
	return start, start.AddDate(0, 0, 1)
}
