// Command mood-journal classifies journal entries and suggests a playlist.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var cli struct {
	Config  string `help:"Path to the YAML config file." type:"path" placeholder:"PATH"`
	Debug   bool   `help:"Enable debug logging."`
	LogFile string `help:"Also write logs to this file, rotated by size." type:"path" placeholder:"PATH"`

	Serve   serveCmd   `cmd:"" help:"Run the local web form." default:"1"`
	Write   writeCmd   `cmd:"" help:"Analyze and save one entry."`
	History historyCmd `cmd:"" help:"List saved entries."`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := kong.Parse(&cli,
		kong.Name("mood-journal"),
		kong.Description("Write a journal entry, get its mood and a playlist to match."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	return ctx.Run(&appContext{
		configPath: cli.Config,
		logger:     newLogger(cli.Debug, cli.LogFile),
	})
}

func newLogger(debug bool, logFile string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "mood-journal",
	})
}
