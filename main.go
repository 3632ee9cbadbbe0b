package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-heapdb/config"
	"go-heapdb/util/logger"
)

const usage = `usage: heapdb <command> [flags]

commands:
  convert  -in rows.txt -out table.dat -types int,string
  scan     [-catalog catalog.json] -table name [-alias a]
  join     [-catalog catalog.json] -left a -right b -on 0=0
`

func main() {
	if len(os.Args) < 2 {
		fatal(usage)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(err)
	}
	if err := logger.Configure(cfg.Logger); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
		case "convert": err = runConvert(cfg, args)
		case "scan":    err = runScan(ctx, cfg, args, os.Stdout)
		case "join":    err = runJoin(ctx, cfg, args, os.Stdout)
		default:        fatalf("unknown command '%s'\n%s", cmd, usage)
	}
	if err != nil {
		logger.L.WithField("command", cmd).Error(err)
		os.Exit(1)
	}
}

func fatal(val interface{}) {
	fmt.Fprintln(os.Stderr, val)
	os.Exit(1)
}

func fatalf(format string, values ...interface{}) {
	fmt.Fprintf(os.Stderr, format, values...)
	os.Exit(1)
}
