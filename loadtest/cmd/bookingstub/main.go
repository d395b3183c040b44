package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-booking-reminder/loadtest/internal/stub"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(stub.NewBookingStorage()).Register(r)

	slog.Info("booking store stub listening", slog.String("port", port))
	if err := r.Run(":" + port); err != nil {
		slog.Error("booking store stub exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
