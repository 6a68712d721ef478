package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/assistantbot/contactbook/internal"
	"github.com/assistantbot/contactbook/internal/bot"
	"github.com/assistantbot/contactbook/internal/config"
	"github.com/assistantbot/contactbook/internal/store"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Println("contactbook version:", internal.Version.Version)
		fmt.Println()

		fmt.Println("Build information:")
		fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if internal.Version.Commit != "" {
			fmt.Println("  Git commit:", internal.Version.Commit)
		}
		return
	}

	var conf *config.ConfigFile
	var err error
	if configPath != "" {
		conf, err = config.FromFile(configPath)
	} else {
		conf, err = config.Default()
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	logs, err := logging.NewLogging(
		"contactbook",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot initialize logging:", err)
		os.Exit(1)
	}

	logger := logs.GetLogger()
	logger.Debugf("Starting contactbook (%s)", internal.Version.Version)

	s := store.NewStore(conf.Snapshot, logs.GetChildLogger("store"))
	dir, err := s.Load()
	if err != nil {
		logger.Fatalw("cannot load directory snapshot", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b := bot.New(dir, s, logs.GetChildLogger("bot"), conf.Prompt)
	if err := b.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Fatalw("cannot save directory snapshot", zap.Error(err))
	}
}
