package main

import (
	"os"

	"github.com/gtoxlili/evoTrade/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// 配置错误对启动是致命的
		log := logger.Base()
		log.Error().Err(err).Msg("startup aborted")
		os.Exit(1)
	}
}
