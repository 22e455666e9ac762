// Package cmd ...
package cmd

import (
	"context"
	"fmt"

	"github.com/Dyastin-0/mithril/logger"
	"github.com/Dyastin-0/mithril/styles"
	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

const (
	VERSION      = "0.1.0"
	defaultCount = 32
)

func New() *cli.Command {
	return &cli.Command{
		Name:    "mithril",
		Usage:   "validate source 2 demo files",
		Version: VERSION,
		Flags:   rootFlags(),
		Action:  mithrilAction,
		Commands: []*cli.Command{
			inspectCommand(),
			checkCommand(),
		},
	}
}

// mithrilAction inspects piped input or a named file, otherwise it prints
// the banner and help.
func mithrilAction(ctx context.Context, cmd *cli.Command) error {
	file := cmd.String("file")
	if !isTerminal(cmd.Root().Reader) || (file != "" && file != "-") {
		return inspectAction(ctx, cmd)
	}

	figure := figure.NewFigure("mithril", "", true)
	fmt.Fprintln(cmd.Root().Writer, styles.TITLE.Render(figure.String()))

	return cli.ShowAppHelp(cmd)
}

func defaultFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "demo file to read, - for stdin",
			Value:   "-",
			Sources: cli.EnvVars("MITHRIL_FILE"),
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "directory to browse when no input is piped",
			Value:   ".",
		},
		&cli.BoolFlag{
			Name:    "progress",
			Aliases: []string{"p"},
			Usage:   "show a progress bar while reading a file",
		},
		&cli.BoolFlag{
			Name:  "log",
			Usage: "write logs to a file",
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "log file path, defaults to ~/mithril/logs/mithril.log",
			Sources: cli.EnvVars("MITHRIL_LOG_FILE"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log to stderr",
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "validate a demo and print the start of its payload",
		Flags:  append(defaultFlags(), countFlag()),
		Action: inspectAction,
	}
}

func countFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   "number of payload bytes to print",
		Value:   defaultCount,
		Sources: cli.EnvVars("MITHRIL_COUNT"),
	}
}

// rootFlags are the inspect flags, kept local so subcommands define their own.
func rootFlags() []cli.Flag {
	flags := append(defaultFlags(), countFlag())
	for _, fl := range flags {
		switch f := fl.(type) {
		case *cli.StringFlag:
			f.Local = true
		case *cli.BoolFlag:
			f.Local = true
		case *cli.IntFlag:
			f.Local = true
		}
	}
	return flags
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	count := int(cmd.Int("count"))
	if count < 0 {
		return fmt.Errorf("count must not be negative: %d", count)
	}

	return inspect(ctx, cmd, newLogger(cmd), cmd.String("file"), count)
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "validate a demo and print a summary",
		Flags:  defaultFlags(),
		Action: checkAction,
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	return check(ctx, cmd, newLogger(cmd), cmd.String("file"))
}

// newLogger builds the run logger from the command flags. Logging is off
// unless --log or --verbose is set.
func newLogger(cmd *cli.Command) logger.Logger {
	l := logger.New()

	toFile := cmd.Bool("log")
	verbose := cmd.Bool("verbose")

	path := cmd.String("log-file")
	if toFile && path == "" {
		p, err := logger.LogPath("logs")
		if err != nil {
			fmt.Fprintf(cmd.Root().ErrWriter, "logging disabled: %v\n", err)
			toFile = false
		}
		path = p
	}

	switch {
	case toFile && verbose:
		l.InitMultiWriter(path, cmd.Root().ErrWriter)
	case toFile:
		l.Init(path)
	case verbose:
		l.InitConsole(cmd.Root().ErrWriter)
	}

	return l.WithStr("run", uuid.NewString())
}
