package main

import (
	"github.com/BryanM518/encuestas-cli/cli"
	"github.com/BryanM518/encuestas-cli/config"
	"github.com/BryanM518/encuestas-cli/log"
)

func main() {
	cfg := config.Load()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	cli.Execute(cfg)
}
