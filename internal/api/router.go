package api

import (
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/api/handler"
	"github.com/Osbaldo-Arellano/MDSF-Migration/pkg/router"
)

// RegisterRoutes wires the run management endpoints onto the router.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/report", handler.GetRunReport)
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	// Generic run route last
	r.GET("/api/v1/runs/*", handler.GetRun)
}
