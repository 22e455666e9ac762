package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dyastin-0/mithril/cmd"
)

func main() {
	c := cmd.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The first signal cancels reads, a second one kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := c.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
