package main

import (
	"pagespark/config"
	"pagespark/di"
	"pagespark/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
