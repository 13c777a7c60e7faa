package main

import (
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/api"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/store"
	"github.com/Osbaldo-Arellano/MDSF-Migration/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Osbaldo-Arellano/MDSF-Migration/docs"
)

// @title MDSF Migration API
// @version 1.0
// @description REST API for launching and monitoring uStore to MDSF catalog migration runs.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Init DB
	if err := store.InitDB("migrate.db"); err != nil {
		panic(err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Swagger UI
	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)

	// Start server
	if err := r.Start(":8080"); err != nil {
		panic(err)
	}
}
