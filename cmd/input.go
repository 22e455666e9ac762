package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Dyastin-0/mithril/demo"
	"github.com/Dyastin-0/mithril/logger"
	"github.com/Dyastin-0/mithril/progress"
	"github.com/Dyastin-0/mithril/selector"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

type input struct {
	reader io.Reader
	name   string
	size   int64
	closer io.Closer
}

func (in *input) Close() error {
	if in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openInput resolves the demo source: a named file, piped stdin, or a file
// picked interactively when stdin is a terminal.
func openInput(cmd *cli.Command, file string) (*input, error) {
	stdin := cmd.Root().Reader

	if file == "" || file == "-" {
		if !isTerminal(stdin) {
			return &input{reader: stdin, name: "stdin", size: -1}, nil
		}

		picked, err := selector.NewFileSelector(cmd.String("dir")).Run()
		if err != nil {
			return nil, fmt.Errorf("failed to pick a demo: %w", err)
		}
		file = picked
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open demo: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat demo: %w", err)
	}

	return &input{reader: f, name: filepath.Base(file), size: stat.Size(), closer: f}, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

// Read fails with the context error once ctx is done.
func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// load opens the input named by file and validates it as a demo.
// It returns the demo and the display name of its input.
func load(ctx context.Context, cmd *cli.Command, log logger.Logger, file string) (*demo.Demo, string, error) {
	in, err := openInput(cmd, file)
	if err != nil {
		return nil, "", err
	}
	defer in.Close()

	log = log.WithStr("input", in.name)
	log.WithAny("size", in.size).Debug("reading demo")

	var r io.Reader = &ctxReader{ctx: ctx, r: in.reader}
	if cmd.Bool("progress") && in.size > 0 {
		p := progress.New(cmd.Root().ErrWriter)
		bar := p.NewBar(in.size, in.name)
		defer p.Finish(bar)

		r = p.Reader(r, bar)
	}

	d, err := demo.FromReader(r)
	if err != nil {
		log.WithErr(err).Error("validation failed")
		return nil, "", fmt.Errorf("%s: %w", in.name, err)
	}

	log.WithInt("payload", d.Len()).Info("demo validated")

	return d, in.name, nil
}
