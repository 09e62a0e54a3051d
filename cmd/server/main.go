package main

import (
	"flag"
	"strings"

	"github.com/hayuwidyas/commerce-api/internal/app"
	"github.com/hayuwidyas/commerce-api/internal/config"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all / api / worker")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 身份令牌密钥校验：生产环境拒绝弱密钥启动
	if isWeakSecret(cfg.Auth.UserJWTSecret) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("用户 JWT secret 过弱或仍为默认值，请配置强随机密钥")
		}
		stdLog.Printf("警告: 用户 JWT secret 过弱或仍为默认值，上线前务必更换")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config: cfg,
		Logger: logger.S(),
		Mode:   mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lowered := strings.ToLower(secret)
	for _, marker := range []string{"change-me", "change-in-production", "your-secret-key"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
