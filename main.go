package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"slserver/database" //PostgreSQLとRedisの初期化
	"slserver/handlers" //トークン発行
	"slserver/middlewares"
	"slserver/play" //ゲームプレイのWebSocketエンドポイント
	"slserver/play/broadcast"
	"slserver/screens" //ルーム作成・参加などのHTTPリクエストの処理
	"slserver/store"   //ルームドキュメントのトランザクショナルストア
	"slserver/utils"   //ロガーの初期化とCronジョブ

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// ルームドキュメントのストアと配信ハブを初期化
	st := store.NewRoomStore(rdb, logger)
	hub := broadcast.NewHub(st, logger)

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, st, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //ここにデプロイサーバーのIPアドレスを設定
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//トークン発行（未認証でもアクセス可能）
	router.POST("/auth", func(c *gin.Context) {
		handlers.AuthHandler(c, db, logger)
	})

	//ルーム操作は認証必須
	authed := router.Group("/", middlewares.AuthRequired(logger))
	authed.POST("/room/create", func(c *gin.Context) {
		screens.RoomCreate(c, db, st, logger)
	})
	authed.POST("/room/join", func(c *gin.Context) {
		screens.RoomJoin(c, db, st, logger)
	})
	authed.DELETE("/room/leave", func(c *gin.Context) {
		screens.RoomLeave(c, db, st, logger)
	})
	authed.PUT("/room/reset", func(c *gin.Context) {
		screens.RoomReset(c, db, st, logger)
	})
	authed.DELETE("/room", func(c *gin.Context) {
		screens.RoomDelete(c, db, st, logger)
	})
	authed.GET("/room/info", func(c *gin.Context) {
		screens.RoomInfo(c, db, st, logger)
	})

	//ゲームプレイ用WebSocket
	router.GET("/ws", func(c *gin.Context) {
		play.HandleConnections(c.Request.Context(), c.Writer, c.Request, db, st, hub, logger, upgrader)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
