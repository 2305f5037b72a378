package main

import (
	"Lingo/config"
	"Lingo/middleware"
	"Lingo/routes"
	"Lingo/services/redis"
	"Lingo/services/socket_io"
	socketio_types "Lingo/services/socket_io/types"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"Lingo/services/words"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redis.CloseRedis(redisClient)

	roomStore := store.NewRoomStore(gormDB)

	wordsURL := os.Getenv("WORDS_SERVICE_URL")
	if wordsURL == "" {
		wordsURL = "http://localhost:9090"
	}
	wordsSvc := words.NewHTTPClient(wordsURL)

	r := gin.Default()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, roomStore, redisClient)

	sio := &socket_io.MySocketServer{}
	wd := watchdog.NewWatchdog(roomStore, redisClient, (*socketio_types.SocketServer)(sio))
	sio.Start(r, roomStore, wordsSvc, redisClient, wd)
	wd.Start()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for range signalC {
			sio.Close()
			os.Exit(0)
		}
	}()

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
