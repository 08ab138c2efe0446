package main

import (
	"fmt"
	"log"
	"os"

	"tableside/configs"
	"tableside/middlewares"
	"tableside/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedStaff(cfg); err != nil {
		log.Fatalf("seed staff failed: %v", err)
	}
	if err := configs.SeedTables(cfg); err != nil {
		log.Fatalf("seed tables failed: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	r.LoadHTMLGlob("templates/*.html")

	// Serve uploaded menu images
	r.Static("/images", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
