package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/gopsx/internal/bios"
	"github.com/bdwalton/gopsx/internal/console"
	"github.com/bdwalton/gopsx/internal/logx"
)

func main() {
	optBiosPath := getopt.StringLong("bios-path", 'b', "./data/SCPH1001.BIN", "Path to the BIOS image")
	optVerbosity := getopt.StringLong("verbosity", 'v', "info", "Log verbosity: error|warn|info|debug|trace")
	optDebug := getopt.ListLong("debug", 'd', "Enable component debug logging: bus|cpu|dma|gpu (repeatable)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	level := new(slog.LevelVar)
	level.Set(logx.ParseLevel(*optVerbosity))
	handler := logx.NewHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	for _, d := range *optDebug {
		handler.SetDebug(logx.ParseComponent(d))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	img, err := bios.Load(*optBiosPath)
	if err != nil {
		logger.Error("BIOS load failed", "err", err)
		os.Exit(1)
	}

	c := console.New(img)

	if err := ebiten.RunGame(c); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
