package main

import (
	"github.com/gridmind-ai/gridmind/backend/internal/server"
	"github.com/gridmind-ai/gridmind/backend/internal/util"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger"
	"github.com/gridmind-ai/gridmind/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Level: util.GetEnvString("LOG_LEVEL", "info"),
	})
	logger.Init(consoleLogger)

	server.Init()
}
