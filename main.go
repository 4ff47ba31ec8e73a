package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"finance-guru/config"
	"finance-guru/database"
	"finance-guru/logger"
	"finance-guru/middleware"
	"finance-guru/router"
)

// @title Finance Guru API
// @version 1.0
// @description 个人记账与提醒服务 API：收支流水、预算、储蓄目标、账单、站内通知与数据导出
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "v1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Printf("Finance Guru %s", version)
		return
	}

	// 日志初始化之前只能用标准库输出
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}
	config.PrintConfig()

	appLogger := logger.New(cfg.Log)

	if err := database.Init(cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("数据库初始化失败")
	}
	middleware.InitJWT(cfg)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router.SetupRouter(cfg, appLogger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info().
			Str("addr", cfg.Server.Port).
			Str("mode", cfg.Server.Mode).
			Str("swagger", "http://localhost"+cfg.Server.Port+"/swagger/index.html").
			Msg("Finance Guru 已启动")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("正在关闭服务器")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("服务器关闭超时")
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		sqlDB.Close()
	}
	appLogger.Info().Msg("服务器已退出")
}
