package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Dyastin-0/mithril/demo"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoBytes(payload []byte) []byte {
	b := append([]byte{}, demo.Magic[:]...)
	b = append(b, 0xDE, 0xAD, 0xC0, 0xDE, 0xDE, 0xAD, 0xC0, 0xDE)
	return append(b, payload...)
}

func testPayload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), stdin, args...)
}

func runContext(t *testing.T, ctx context.Context, stdin []byte, args ...string) (string, error) {
	t.Helper()

	c := New()
	out := &bytes.Buffer{}
	c.Reader = bytes.NewReader(stdin)
	c.Writer = out
	c.ErrWriter = io.Discard

	err := c.Run(ctx, append([]string{"mithril"}, args...))
	return out.String(), err
}

func TestInspect(t *testing.T) {
	payload := testPayload(40)

	tests := []struct {
		name string
		args []string
		want []byte
	}{
		{
			name: "default count",
			args: []string{"inspect"},
			want: payload[:defaultCount],
		},
		{
			name: "custom count",
			args: []string{"inspect", "-n", "4"},
			want: payload[:4],
		},
		{
			name: "count beyond payload",
			args: []string{"inspect", "--count", "100"},
			want: payload,
		},
		{
			name: "root command with piped input",
			args: nil,
			want: payload[:defaultCount],
		},
		{
			name: "root command with flags",
			args: []string{"--verbose", "-p", "-n", "4"},
			want: payload[:4],
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, demoBytes(payload), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, hex.Dump(tt.want), out)
		})
	}
}

func TestInspectErrors(t *testing.T) {
	_, err := run(t, []byte{0xFF, 0xFF}, "inspect")
	assert.True(t, demo.IsKind(err, demo.KindIO))

	_, err = run(t, append([]byte("PBDEMS1\x00"), testPayload(16)...), "inspect")
	assert.ErrorIs(t, err, demo.ErrInvalidDemo)

	_, err = run(t, nil, "inspect")
	assert.True(t, demo.IsKind(err, demo.KindIO))

	_, err = run(t, demoBytes(nil), "inspect", "--count=-1")
	assert.Error(t, err)
}

func TestInspectFile(t *testing.T) {
	payload := testPayload(64)
	path := filepath.Join(t.TempDir(), "match.dem")
	require.NoError(t, os.WriteFile(path, demoBytes(payload), 0644))

	out, err := run(t, nil, "inspect", "-f", path, "-n", "8", "--progress")
	require.NoError(t, err)
	assert.Equal(t, hex.Dump(payload[:8]), out)

	out, err = run(t, nil, "-f", path, "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, hex.Dump(payload[:2]), out)

	_, err = run(t, nil, "inspect", "-f", filepath.Join(t.TempDir(), "missing.dem"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheck(t *testing.T) {
	payload := testPayload(2048)

	out, err := run(t, demoBytes(payload), "check")
	require.NoError(t, err)

	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "stdin")
	assert.Contains(t, out, "2048 bytes")
	assert.Contains(t, out, fmt.Sprintf("%016x", xxhash.Sum64(payload)))
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mithril.log")

	_, err := run(t, demoBytes(testPayload(8)), "check", "--log", "--log-file", path)
	require.NoError(t, err)

	_, err = run(t, []byte("nope"), "check", "--log", "--log-file", path)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"message":"demo validated"`)
	assert.Contains(t, string(data), `"payload":8`)
	assert.Contains(t, string(data), `"message":"validation failed"`)
	assert.Contains(t, string(data), `"run":`)
}

func TestLogShortPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mithril.log")
	file := filepath.Join(dir, "short.dem")
	require.NoError(t, os.WriteFile(file, demoBytes(testPayload(4)), 0644))

	out, err := run(t, nil, "inspect", "-f", file, "-n", "16", "--log", "--log-file", path)
	require.NoError(t, err)
	assert.Equal(t, hex.Dump(testPayload(4)), out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"size":20`)
	assert.Contains(t, string(data), `"message":"payload shorter than count"`)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := runContext(t, ctx, demoBytes(testPayload(8)), "inspect")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
}
