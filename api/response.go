package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构，code 与 HTTP 状态码一致
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func reply(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	reply(c, http.StatusOK, "success", data)
}

// SuccessWithMessage 带提示语的成功响应，前端直接展示 message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	reply(c, http.StatusOK, message, data)
}

// Error 错误响应，不带 data
func Error(c *gin.Context, status int, message string) {
	reply(c, status, message, nil)
}

func BadRequest(c *gin.Context, message string)   { Error(c, http.StatusBadRequest, message) }
func Unauthorized(c *gin.Context, message string) { Error(c, http.StatusUnauthorized, message) }
func NotFound(c *gin.Context, message string)     { Error(c, http.StatusNotFound, message) }

// Conflict 记录当前状态不允许该操作，例如重复预算、已支付账单
func Conflict(c *gin.Context, message string) { Error(c, http.StatusConflict, message) }

// ServiceUnavailable 依赖的外部服务未启用
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

// InternalError 500，message 应已经过 SafeErrorMessage 处理
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
