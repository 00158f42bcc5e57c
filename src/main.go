package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/config"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/database"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/handlers"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/logger"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/middleware"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/repository"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/routes"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/service"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/session"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/storage"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定を読み込み
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Directory); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()

	logger.Log.Info("アプリケーションを開始しています")

	// カタログDB（書籍・メモ）に接続
	catalogDB, err := database.NewDB("catalog", &cfg.CatalogDB, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("カタログDBへの接続に失敗")
	}
	defer catalogDB.Close()

	// 店舗DB（店舖・エリア・カテゴリタグ）に接続
	storeDB, err := database.NewDB("store", &cfg.StoreDB, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("店舗DBへの接続に失敗")
	}
	defer storeDB.Close()

	// S3アップローダーを初期化（設定が有効な場合）
	var uploader *storage.LogUploader
	if cfg.Log.UploadEnabled {
		uploader, err = storage.NewLogUploader(&cfg.S3, logger.Log)
		if err != nil {
			logger.Log.WithError(err).Error("S3アップローダーの初期化に失敗")
		} else {
			// 定期的なログアップロードを開始
			uploader.StartPeriodicUpload(cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge)
		}
	}

	// 依存関係を組み立て
	customValidator := validator.NewCustomValidator()
	sessions := session.NewStore()

	bookRepo := repository.NewBookRepository(catalogDB, logger.Log)
	memoRepo := repository.NewMemoRepository(catalogDB, logger.Log)
	tokenRepo := repository.NewTokenRepository(catalogDB, logger.Log)
	storeRepo := repository.NewStoreRepository(storeDB, logger.Log)

	jwtService := service.NewJWTService(cfg)
	authService := service.NewAuthService(tokenRepo, jwtService, cfg, logger.Log)
	bookService := service.NewBookService(bookRepo, customValidator, logger.Log)
	memoService := service.NewMemoService(memoRepo, customValidator, logger.Log)
	storeService := service.NewStoreService(storeRepo, logger.Log)
	amazonService := service.NewAmazonService(logger.Log)

	h := &routes.Handlers{
		Book:   handlers.NewBookHandler(bookService, logger.Log),
		Memo:   handlers.NewMemoHandler(memoService, logger.Log),
		Store:  handlers.NewStoreHandler(storeService, logger.Log),
		Amazon: handlers.NewAmazonHandler(amazonService, logger.Log),
		Auth:   handlers.NewAuthHandler(authService, sessions, logger.Log),
	}

	// Ginルーターを初期化
	r := gin.New()
	r.Use(gin.Recovery())

	// グローバルmiddlewareを適用
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Site.BaseURL))

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
			"method": c.Request.Method,
			"uri":    c.Request.RequestURI,
		}).Warn("405: サポートされていないメソッド")
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		if err := catalogDB.Health(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "catalog db unreachable"
		} else if err := storeDB.Health(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "store db unreachable"
		}
		c.JSON(status, gin.H{
			"status":    dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// サービスバナー
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ichidan-dokusho API",
			"version": "4.0",
			"service": "ichidan-dokusho-api-server",
		})
	})

	// APIルートを登録
	routes.SetupRoutes(r, h, jwtService)

	// グレースフルシャットダウンの設定
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Log.Info("シャットダウンシグナルを受信しました")

		// 最後のログアップロードを実行
		if uploader != nil {
			if err := uploader.UploadOldLogs(cfg.Log.Directory, 0); err != nil {
				logger.Log.WithError(err).Error("最後のログアップロードに失敗")
			}
		}

		catalogDB.Close()
		storeDB.Close()
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
