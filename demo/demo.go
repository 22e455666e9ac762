// Package demo validates Source 2 replay files.
package demo

import (
	"bytes"
	"io"
)

const (
	MagicSize    = 8
	ReservedSize = 8
	HeaderSize   = MagicSize + ReservedSize
)

// Magic is the signature every Source 2 demo starts with.
var Magic = [MagicSize]byte{'P', 'B', 'D', 'E', 'M', 'S', '2', 0x00}

// Demo holds the bytes of a .dem file that passed validation.
// A Demo can only be obtained from FromBytes or FromReader.
type Demo struct {
	bytes []byte
}

// FromBytes validates b and takes ownership of it.
// The returned Demo keeps the full buffer, magic bytes included.
func FromBytes(b []byte) (*Demo, error) {
	if !bytes.HasPrefix(b, Magic[:]) {
		return nil, invalidFormat()
	}

	return &Demo{bytes: b}, nil
}

// FromReader reads a demo from r. The magic bytes are checked before
// anything else is read, then the reserved block is skipped and the rest
// of r is buffered. The returned Demo holds only that remaining payload.
func FromReader(r io.Reader) (*Demo, error) {
	var magic [MagicSize]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, ioError("read magic", err)
	}

	if magic != Magic {
		return nil, invalidFormat()
	}

	var reserved [ReservedSize]byte
	if _, err := io.ReadFull(r, reserved[:]); err != nil {
		return nil, ioError("read reserved block", err)
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read payload", err)
	}

	return &Demo{bytes: buf}, nil
}

// Bytes returns the validated data. The slice must not be modified.
func (d *Demo) Bytes() []byte {
	return d.bytes
}

// Len returns the number of validated bytes.
func (d *Demo) Len() int {
	return len(d.bytes)
}

// NewReader returns a reader over the validated data.
func (d *Demo) NewReader() *bytes.Reader {
	return bytes.NewReader(d.bytes)
}
