package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/api"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/config"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/database"
	"github.com/Samsonboadi/Magnetic-Survey-sub000/internal/team"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// Team presence: Redis GEO when configured, process-local otherwise
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.Printf("Team presence backed by Redis at %s", cfg.RedisAddr)
	}
	teamStore := team.NewStore(rdb)

	// 初始化路由
	router := api.SetupRouter(cfg, teamStore)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
