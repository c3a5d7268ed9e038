// meshcut is a CLI utility for extracting and generating OBJ meshes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcut/internal/config"
	"github.com/Faultbox/meshcut/internal/logger"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case "extract", "x":
		err = cmdExtract(cfg, args)
	case "split":
		err = cmdSplit(ctx, cfg, args)
	case "cone":
		err = cmdCone(cfg, args)
	case "info":
		err = cmdInfo(cfg, args)
	case "stl":
		err = cmdSTL(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `meshcut - OBJ face extraction and primitive generation

Usage:
  meshcut [global options] <command> [options]

Commands:
  extract [-faces list] <in.obj> <out.obj>   Extract faces into a new mesh
  split [-out dir] [-part name=list] <in.obj> Extract several parts concurrently
  cone [-n sides] [-theta rad] <out.obj>     Generate a regular n-gon cone
  info <in.obj>                              Show mesh statistics
  stl <in.obj> <out.stl>                     Convert to binary STL
  config [path]                              Write the effective config

Face lists are 0-based, comma-separated, with inclusive ranges: "3,1,2" or
"42-44,191-193". Use "-" as a path for stdin/stdout.

Global options:
  -config path    Config file (default ./meshcut.yaml, then the user config dir)
  -debug          Enable debug logging
  -quiet          Only log errors
  -log-file path  Also log to a rotated file
  -encoding name  Text encoding of mesh files (utf-8, euc-kr, shift-jis, gbk, latin1, windows-1252)

Examples:
  meshcut extract -faces 42-44,191-193 rhino.obj horn.obj
  meshcut cone -n 10 -theta 1.0472 deca.obj
  meshcut -config parts.yaml split -out parts rhino.obj`)
}
