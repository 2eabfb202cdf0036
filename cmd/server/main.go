package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/api/handler"
	"study-buddy/backend/internal/api/middleware"
	"study-buddy/backend/internal/api/router"
	"study-buddy/backend/internal/repository"
	"study-buddy/backend/internal/service"
	"study-buddy/backend/pkg/database"
	"study-buddy/backend/pkg/jwt"
	applogger "study-buddy/backend/pkg/logger"
	"study-buddy/backend/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("STUDY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	client, err := database.NewClient(context.Background(), &cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	repo := repository.NewRepository(client.Database(cfg.Database.Name))

	// 3.1 创建索引
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	if err := repo.EnsureIndexes(indexCtx, cfg.Database.UniqueEmailIndex); err != nil {
		// 已有重复邮箱时唯一索引会失败，服务仍可运行，唯一性退化为应用层检查
		logger.Warn("创建索引失败", zap.Error(err))
	}
	cancelIndex()

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var (
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，会话吊销与限流功能将不可用", zap.Error(err))
	} else {
		blacklist = rdb
		limiter = rdb
	}

	// 5. 初始化会话 Token 管理器与 GitHub OAuth
	jwtMgr := jwt.NewManager(&cfg.Auth)
	provider := service.NewGitHubProvider(&cfg.Auth.GitHub)
	if cfg.Auth.GitHub.ClientID == "" {
		logger.Warn("未配置 GitHub OAuth，登录将不可用")
	}

	// 6. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, jwtMgr, provider, blacklist, logger)
	h := handler.NewHandler(cfg, svc, repo)

	// 7. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, svc.Auth, limiter, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}
