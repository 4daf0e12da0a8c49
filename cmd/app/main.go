package main

import (
	"weekgrid/config"
	"weekgrid/di"
	"weekgrid/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
