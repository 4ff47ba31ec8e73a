package api

import (
	"finance-guru/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SafeErrorMessage release 模式下只返回 fallback
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// serverError 记录原始错误并返回 500；错误同时挂到 gin 上下文，访问日志里可见
func serverError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
	InternalError(c, SafeErrorMessage(err, fallback))
}
