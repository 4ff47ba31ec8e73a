package store

import (
	"context"
	"time"

	"finance-guru/models"
)

// Match 当天去重的匹配条件：消息需同时包含全部子串
type Match []string

// Contains 构造匹配条件
func Contains(parts ...string) Match {
	return Match(parts)
}

// ExistsToday 判断 day 当天是否已有匹配的通知
// 只做 COUNT，不保留游标
func (s *Store) ExistsToday(ctx context.Context, userID uint, match Match, day time.Time) (bool, error) {
	start, end := dayRange(day)
	q := s.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end)
	for _, part := range match {
		q = q.Where("message LIKE ?", "%"+escapeLike(part)+"%")
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, wrap("notification exists", err)
	}
	return count > 0, nil
}

// InsertNotification 追加一条通知
func (s *Store) InsertNotification(ctx context.Context, userID uint, message string, severity models.Severity) error {
	n := models.Notification{UserID: userID, Message: message, Type: severity}
	return wrap("insert notification", s.conn(ctx).Create(&n).Error)
}

// RecentNotifications 最近的通知及未读数
func (s *Store) RecentNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, int64, error) {
	var list []models.Notification
	if err := s.conn(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, wrap("list notifications", err)
	}
	var unread int64
	if err := s.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, 0, wrap("count unread", err)
	}
	return list, unread, nil
}

// MarkAllRead 全部标记为已读
func (s *Store) MarkAllRead(ctx context.Context, userID uint) error {
	err := s.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return wrap("mark read", err)
}

// DeleteNotification 删除单条通知
func (s *Store) DeleteNotification(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return wrap("delete notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearNotifications 清空用户的全部通知
func (s *Store) ClearNotifications(ctx context.Context, userID uint) error {
	return wrap("clear notifications", s.conn(ctx).Where("user_id = ?", userID).Delete(&models.Notification{}).Error)
}
