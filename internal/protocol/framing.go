package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// DefaultMaxMessageBytes bounds a single client line.
const DefaultMaxMessageBytes = 256

// ErrFrameTooLong is returned by a Scanner when a line exceeds its limit.
var ErrFrameTooLong = bufio.ErrTooLong

// NewScanner returns a scanner yielding one message per newline terminated
// line. Partial lines are buffered until the newline arrives, several lines
// in one read are yielded one by one, and a trailing carriage return is
// dropped. A line longer than maxBytes stops the scanner with
// ErrFrameTooLong.
func NewScanner(r io.Reader, maxBytes int) *bufio.Scanner {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMessageBytes
	}
	s := bufio.NewScanner(r)
	// The scanner needs room for the delimiter on top of the payload.
	s.Buffer(make([]byte, 0, maxBytes+1), maxBytes+1)
	s.Split(scanLines)
	return s
}

func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}
	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte{'\r'}), nil
	}
	return 0, nil, nil
}

// Frame terminates a reply with a newline.
func Frame(msg string) []byte {
	b := make([]byte, 0, len(msg)+1)
	b = append(b, msg...)
	return append(b, '\n')
}

// IsFrameTooLong reports whether err came from an oversized line.
func IsFrameTooLong(err error) bool {
	return errors.Is(err, ErrFrameTooLong)
}
