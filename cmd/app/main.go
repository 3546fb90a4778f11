package main

import (
	"sparkle/config"
	"sparkle/di"
	"sparkle/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
