package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/Dyastin-0/mithril/logger"
	"github.com/Dyastin-0/mithril/styles"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// inspect prints a hex dump of the first count payload bytes.
func inspect(ctx context.Context, cmd *cli.Command, log logger.Logger, file string, count int) error {
	d, _, err := load(ctx, cmd, log, file)
	if err != nil {
		return err
	}

	b := d.Bytes()
	if count > len(b) {
		log.WithInt("count", count).WithInt("payload", len(b)).Warn("payload shorter than count")
	}
	b = b[:min(count, len(b))]

	_, err = fmt.Fprint(cmd.Root().Writer, hex.Dump(b))
	return err
}

// check prints the payload size and its xxhash64 digest.
func check(ctx context.Context, cmd *cli.Command, log logger.Logger, file string) error {
	d, name, err := load(ctx, cmd, log, file)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("payload %s (%d bytes) xxhash64 %016x",
		humanize.IBytes(uint64(d.Len())),
		d.Len(),
		xxhash.Sum64(d.Bytes()),
	)

	_, err = fmt.Fprintf(cmd.Root().Writer, "%s %s %s\n",
		styles.SUCCESS.Render("valid"),
		styles.TITLE.Render(name),
		styles.INFO.Render(summary),
	)
	return err
}
