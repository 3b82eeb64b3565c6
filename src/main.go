package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminder-app/src/config"
	"reminder-app/src/database"
	"reminder-app/src/interface/handler"
	"reminder-app/src/logger"
	"reminder-app/src/notification"
	"reminder-app/src/repository"
	"reminder-app/src/routes"
	"reminder-app/src/security"
	"reminder-app/src/service"
	"reminder-app/src/storage"
	"reminder-app/src/usecase"
	"reminder-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定を読み込み
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Directory); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()
	logger.SetLevel(cfg.Log.Level)

	logger.Log.Info("アプリケーションを開始しています")

	// S3アップローダーを初期化（設定が有効な場合）
	var uploader *storage.LogUploader
	if cfg.Log.UploadEnabled {
		s3Config := &storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
		}

		var err error
		uploader, err = storage.NewLogUploader(s3Config, logger.Log)
		if err != nil {
			logger.Log.WithError(err).Error("S3アップローダーの初期化に失敗")
		} else {
			// 定期的なログアップロードを開始
			uploader.StartPeriodicUpload(cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge)
		}
	}

	// データベースに接続
	db, err := database.NewDB(&database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("データベース接続に失敗")
	}
	defer db.Close()

	// スキーマを準備
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		logger.Log.WithError(err).Fatal("マイグレーションに失敗")
	}
	cancelMigrate()

	// リポジトリ層
	reminderRepo := repository.NewReminderRepository(db, logger.Log)
	projectRepo := repository.NewProjectRepository(db, logger.Log)
	patternRepo := repository.NewPatternRepository(db, logger.Log)
	userRepo := repository.NewUserRepository(db, logger.Log)

	// 通知スケジューラ
	scheduler := notification.NewScheduler(reminderRepo, logger.Log, cfg.Notification.Enabled)
	defer scheduler.Close()

	// ユースケース層
	stores := usecase.NewStoreManager(reminderRepo, scheduler, logger.Log, time.Now)
	projectUsecase := usecase.NewProjectUsecase(projectRepo, time.Now)
	patternUsecase := usecase.NewPatternUsecase(patternRepo, reminderRepo)

	// サービス層
	jwtService := service.NewJWTService(cfg)
	authService := service.NewAuthService(userRepo, jwtService, logger.Log, cfg.Auth.JWTExpiresIn)

	// バリデーションとサニタイズ
	customValidator := validator.NewCustomValidator()
	sanitizer := security.NewInputSanitizer()

	// ハンドラー層
	authHandler := handler.NewAuthHandler(authService, customValidator, logger.Log)
	reminderHandler := handler.NewReminderHandler(stores, customValidator, sanitizer, logger.Log)
	projectHandler := handler.NewProjectHandler(projectUsecase, customValidator, logger.Log)
	patternHandler := handler.NewPatternHandler(patternUsecase, logger.Log)

	// Ginルーターを初期化
	r := gin.Default()

	// NoRouteハンドラー（404）
	r.NoRoute(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("404: ルートが見つかりません")
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	// NoMethodハンドラー（405）
	r.NoMethod(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("405: サポートされていないメソッド")
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// 認証が不要なパブリックルート
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "reminder-app API",
			"version": "1.0",
			"service": "reminder-app-api-server",
		})
	})

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "NG",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// APIルートを設定
	routes.SetupRoutes(r, authHandler, reminderHandler, projectHandler, patternHandler, jwtService, userRepo)

	// グレースフルシャットダウンの設定
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Log.Info("シャットダウンシグナルを受信しました")

		scheduler.Close()

		// 最後のログアップロードを実行
		if uploader != nil {
			logger.Log.Info("最後のログアップロードを実行中...")
			if err := uploader.UploadOldLogs(cfg.Log.Directory, 0); err != nil {
				logger.Log.WithError(err).Error("最後のログアップロードに失敗")
			}
		}

		db.Close()
		logger.CloseLogger()
		os.Exit(0)
	}()

	// サーバーを起動
	serverAddr := ":" + cfg.Server.Port
	logger.Log.WithField("port", cfg.Server.Port).Info("サーバーを開始します")

	if err := r.Run(serverAddr); err != nil {
		logger.Log.WithError(err).Fatal("サーバーの起動に失敗")
	}
}
