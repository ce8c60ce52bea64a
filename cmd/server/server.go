package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/handlers"
	"github.com/thereayou/bookswap/internal/services"
	"github.com/thereayou/bookswap/internal/websocket"
	"github.com/thereayou/bookswap/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	// Реестр присутствия живет столько же, сколько процесс
	hub := websocket.NewHub()
	go hub.Run()

	trust := services.NewRedisTrustGate(rdb)
	exchanges := services.NewDatabaseExchangeDirectory(dbConn)

	core := handlers.NewMessageHandler(dbConn, hub, trust, exchanges)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	memberH := handlers.NewMemberHandler(dbConn, hub)
	convH := handlers.NewConversationHandler(dbConn, core, exchanges)
	msgH := handlers.NewHTTPMessageHandler(core)
	notifH := handlers.NewNotificationHandler(dbConn, hub)
	exchangeH := handlers.NewExchangeHandler(dbConn, core, notifH)
	wsH := handlers.NewWebSocketHandler(hub, core)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, memberH, convH, msgH, notifH, exchangeH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
