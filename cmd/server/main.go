// Small read-only API over the persisted jobs, for checking what recent
// crawls have saved without opening a SQL console.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-jobradar-crawler/internal/config"
	"go-jobradar-crawler/internal/database"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		count, err := repo.CountJobs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"jobs":   count,
		})
	})

	r.GET("/jobs", func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
		if err != nil || days <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}

		jobs, err := repo.RecentJobs(c.Request.Context(), days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"days":  days,
			"count": len(jobs),
			"jobs":  jobs,
		})
	})

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
