package errdetect

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/errdetect/internal/trace"
)

var (
	// ErrInvalidInput reports a payload or frame that is empty or holds
	// characters other than '0' and '1'.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfig reports a non-positive block size or an unusable
	// generator polynomial.
	ErrInvalidConfig = errors.New("invalid config")
)

// Trace is the ordered list of calculation steps returned with every result.
type Trace = trace.Trace

// Transmit encodes payload with c, passes the frame through channel and
// verifies whatever comes out. A nil channel delivers the frame unchanged.
//
// Sender and receiver share nothing but the frame string, so Transmit is a
// convenience for tests and tooling rather than part of any codec.
func Transmit(c Codec, payload string, channel func(frame string) string) (sent, received string, valid bool, err error) {
	sent, _, err = c.Send(payload)
	if err != nil {
		return "", "", false, fmt.Errorf("%s send: %w", c.Name(), err)
	}
	received = sent
	if channel != nil {
		received = channel(sent)
	}
	valid, _, err = c.Receive(received)
	if err != nil {
		return sent, received, false, fmt.Errorf("%s receive: %w", c.Name(), err)
	}
	return sent, received, valid, nil
}
