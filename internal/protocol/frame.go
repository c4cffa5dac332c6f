// Package protocol implements the marketplace wire format shared by every
// service: a 4-byte big-endian length prefix followed by a UTF-8 JSON body.
//
// A connection carries a sequence of independent request/response pairs.
// The server reads one request, writes exactly one response and loops until
// the peer closes or a read fails.
package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize caps a single payload at 8 MiB.
const MaxFrameSize = 8 * 1024 * 1024

const headerSize = 4

// ErrFrameSize is returned for zero-length or oversized frames. Callers treat
// it as fatal for the connection.
var ErrFrameSize = errors.New("invalid frame length")

// WriteFrame encodes v as JSON and writes it as a single length-prefixed frame.
func WriteFrame(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if len(body) == 0 || len(body) > MaxFrameSize {
		return fmt.Errorf("write frame: %w (%d bytes)", ErrFrameSize, len(body))
	}

	buf := make([]byte, headerSize+len(body))
	binary.BigEndian.PutUint32(buf[:headerSize], uint32(len(body)))
	copy(buf[headerSize:], body)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame and decodes its JSON body into v.
// A clean close before the header returns io.EOF unwrapped.
func ReadFrame(r io.Reader, v any) error {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("read frame header: %w", err)
	}

	n := binary.BigEndian.Uint32(header[:])
	if n == 0 || n > MaxFrameSize {
		return fmt.Errorf("read frame: %w (%d bytes)", ErrFrameSize, n)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("read frame body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return nil
}
