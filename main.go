package main

import (
	"log"

	"gradkart/config"
	"gradkart/controllers"
	"gradkart/database"
	"gradkart/middleware"
	"gradkart/routes"
	"gradkart/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: error loading .env file:", err)
	}

	cfg := config.Load()

	if err := db.InitDB(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.CloseDB()

	if cfg.SeedDemoData {
		if err := db.Seed(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
	}

	controllers.Init(cfg)
	middlewares.Init(cfg.JWTSecret)

	sweeper := services.NewSweeper(cfg.PayoutDelay)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start sweeper:", err)
	}
	defer sweeper.Stop()

	r := gin.Default()
	routes.SetupRoutes(r, cfg.CORSOrigin)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
