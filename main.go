package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"aicodegen-backend/cmd"
)

// @title aicodegen-backend API
// @version 1.0
// @description Generate, improve and explain code with a generative-AI provider and keep a per-user prompt history.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
