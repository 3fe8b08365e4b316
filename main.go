package main

import (
	"os"

	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
