package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Progress struct {
	progress *mpb.Progress
}

type countingReader struct {
	reader io.Reader
	bar    *mpb.Bar
}

func (c *countingReader) Read(p []byte) (n int, err error) {
	n, err = c.reader.Read(p)
	c.bar.IncrBy(n)
	return
}

func New(w io.Writer) *Progress {
	return &Progress{
		progress: mpb.New(mpb.WithOutput(w), mpb.WithWidth(48)),
	}
}

func (p *Progress) NewBar(n int64, text string) *mpb.Bar {
	bar := p.progress.AddBar(n,
		mpb.PrependDecorators(
			decor.Name(text, decor.WC{W: 12, C: decor.DindentRight}),
			decor.CountersKibiByte(" % .2f / % .2f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Elapsed(1, decor.WC{W: 12, C: decor.DindentRight}),
		),
	)

	return bar
}

// Reader returns src wrapped so that every read advances bar.
func (p *Progress) Reader(src io.Reader, bar *mpb.Bar) io.Reader {
	return &countingReader{
		reader: src,
		bar:    bar,
	}
}

// Finish aborts bar if the read stopped early and waits for rendering to end.
func (p *Progress) Finish(bar *mpb.Bar) {
	if !bar.Completed() {
		bar.Abort(false)
	}

	p.progress.Wait()
}
