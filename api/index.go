package api

import (
	"net/http"

	"weekgrid/config"
	"weekgrid/di"
	"weekgrid/shared/logger"
)

var handler http.Handler

func init() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	handler = di.InitializeService().Handler()
}

// Handler adapts the service for serverless platforms that route every
// request through a single entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	handler.ServeHTTP(w, r)
}
