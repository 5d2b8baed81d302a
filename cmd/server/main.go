package main

import (
	"log"

	"triton-system/config"
	"triton-system/internal/auth"
	"triton-system/internal/database"
	"triton-system/internal/server"
	"triton-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.JwtSecret = []byte(cfg.Auth.JWTSecret)

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)
	tokens := auth.NewRedisTokenStore(redisClient)

	r := server.NewRouter(db, tokens, cfg.Server.RateLimit)

	addr := ":" + cfg.Server.Port
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
