package api

import (
	"errors"

	"finance-guru/middleware"
	"finance-guru/models"
	"finance-guru/store"

	"github.com/gin-gonic/gin"
)

// recentNotificationLimit 通知列表条数
const recentNotificationLimit = 20

// NotificationHandler 通知处理器
type NotificationHandler struct{}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// NotificationList 通知列表
type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int64                 `json:"unread"`
}

// List 最近通知
// @Summary 获取通知
// @Description 最近 20 条通知及未读数，客户端轮询获取
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=NotificationList} "获取成功"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, unread, err := ledger().RecentNotifications(c.Request.Context(), userID, recentNotificationLimit)
	if err != nil {
		serverError(c, err, "查询失败")
		return
	}

	Success(c, NotificationList{Notifications: list, Unread: unread})
}

// MarkAllRead 全部标记已读
// @Summary 通知全部标记已读
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "操作成功"
// @Router /api/v1/notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := ledger().MarkAllRead(c.Request.Context(), userID); err != nil {
		serverError(c, err, "操作失败")
		return
	}

	SuccessWithMessage(c, "已全部标记为已读", nil)
}

// Delete 删除单条通知
// @Summary 删除通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ledger().DeleteNotification(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "通知不存在")
			return
		}
		serverError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// Clear 清空通知
// @Summary 清空全部通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "已清空"
// @Router /api/v1/notifications [delete]
func (h *NotificationHandler) Clear(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := ledger().ClearNotifications(c.Request.Context(), userID); err != nil {
		serverError(c, err, "操作失败")
		return
	}

	SuccessWithMessage(c, "已清空", nil)
}
