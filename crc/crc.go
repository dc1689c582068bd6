// Package crc implements the cyclic redundancy check by binary long
// division over GF(2): subtraction is XOR and there is no borrow.
//
// The sender appends len(polynomial)-1 zero bits to the data, divides and
// appends the remainder to the original data. The receiver divides the whole
// frame and expects an all-zero remainder. Every burst shorter than the
// polynomial degree is detected, and so is every single-bit error as long
// as the polynomial ends in 1.
package crc

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
	"github.com/yyyoichi/errdetect/internal/trace"
)

var _ errdetect.Codec = (*Codec)(nil)

type Codec struct {
	polynomial string
}

// Division is the outcome of XORDivide.
type Division struct {
	Dividend  string
	Divisor   string
	Remainder string
	// Steps counts the XOR subtractions performed.
	Steps int
	Trace errdetect.Trace
}

type EncodeResult struct {
	Data         string
	Polynomial   string
	AppendedData string
	Remainder    string
	Frame        string
	Trace        errdetect.Trace
}

type VerifyResult struct {
	Frame      string
	Polynomial string
	Remainder  string
	Valid      bool
	Trace      errdetect.Trace
}

// XORDivide divides dividend by divisor over GF(2) and returns the
// len(divisor)-1 bit remainder.
func XORDivide(dividend, divisor string) (*Division, error) {
	if err := checkPolynomial(divisor); err != nil {
		return nil, err
	}
	if _, err := bitstr.Check(dividend, false); err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	return divide(dividend, divisor), nil
}

func divide(dividend, divisor string) *Division {
	var (
		tb      trace.Builder
		k       = len(divisor)
		scratch = []byte(dividend)
		steps   int
	)
	tb.Step("Binary division (using XOR):")
	tb.Step("Dividend: %s", dividend)
	tb.Step("Divisor:  %s", divisor)
	tb.Blank()

	for pos := 0; pos+k <= len(scratch); pos++ {
		// a leading 0 means the divisor does not go into this window
		if scratch[pos] != '1' {
			continue
		}
		steps++
		tb.Step("Step %d:", steps)
		tb.Step("  %s[%s]%s", scratch[:pos], scratch[pos:pos+k], scratch[pos+k:])
		tb.Step("  XOR with %s", divisor)
		for i := 0; i < k; i++ {
			if scratch[pos+i] == divisor[i] {
				scratch[pos+i] = '0'
			} else {
				scratch[pos+i] = '1'
			}
		}
		tb.Step("  Result: %s", scratch)
		tb.Blank()
	}

	var remainder string
	if n := len(scratch) - (k - 1); n >= 0 {
		remainder = string(scratch[n:])
	} else {
		// a dividend shorter than the remainder is its own remainder
		remainder = bitstr.PadLeft(string(scratch), k-1)
	}
	tb.Step("Final remainder: %s", remainder)

	return &Division{
		Dividend:  dividend,
		Divisor:   divisor,
		Remainder: remainder,
		Steps:     steps,
		Trace:     tb.Trace(),
	}
}

// Encode is a convenience for New(WithPolynomial(polynomial)).Encode(data).
func Encode(data, polynomial string) (*EncodeResult, error) {
	c, err := New(WithPolynomial(polynomial))
	if err != nil {
		return nil, err
	}
	return c.Encode(data)
}

// Verify is a convenience for New(WithPolynomial(polynomial)).Verify(frame).
func Verify(frame, polynomial string) (*VerifyResult, error) {
	c, err := New(WithPolynomial(polynomial))
	if err != nil {
		return nil, err
	}
	return c.Verify(frame)
}

// New returns a CRC codec. The default generator is DefaultPolynomial.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{polynomial: DefaultPolynomial}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Codec) Polynomial() string { return c.polynomial }

// Degree is the polynomial degree, i.e. the number of check bits.
func (c *Codec) Degree() int { return len(c.polynomial) - 1 }

func (c *Codec) Name() string { return "crc" }

func (c *Codec) Encode(data string) (*EncodeResult, error) {
	data, err := bitstr.Check(data, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	var (
		tb       trace.Builder
		zeros    = bitstr.Zeros(c.Degree())
		appended = data + zeros
	)
	tb.Step("Step 1: Take the data bits")
	tb.Step("Data: %s", data)
	tb.Blank()
	tb.Step("Step 2: Choose a generator polynomial (divisor)")
	tb.Step("Polynomial: %s", c.polynomial)
	tb.Step("Polynomial length: %d bits", len(c.polynomial))
	tb.Blank()
	tb.Step("Step 3: Append (n-1) zeros to the end of data")
	tb.Step("where n = %d (number of bits in polynomial)", len(c.polynomial))
	tb.Step("Appended data: %s + %s = %s", data, zeros, appended)
	tb.Blank()
	tb.Step("Step 4: Divide the new data by the polynomial")
	tb.Step("Use XOR for subtraction, keep only the remainder")
	tb.Blank()
	div := divide(appended, c.polynomial)
	tb.Append(div.Trace, "")
	tb.Blank()

	frame := data + div.Remainder
	tb.Step("Step 5: Append the remainder to the original data")
	tb.Step("Original data: %s", data)
	tb.Step("Remainder (CRC): %s", div.Remainder)
	tb.Step("CRC code: %s", frame)
	tb.Blank()
	tb.Step("Transmitted: %s", frame)

	return &EncodeResult{
		Data:         data,
		Polynomial:   c.polynomial,
		AppendedData: appended,
		Remainder:    div.Remainder,
		Frame:        frame,
		Trace:        tb.Trace(),
	}, nil
}

// Verify divides frame by the polynomial; an intact frame leaves no remainder.
func (c *Codec) Verify(frame string) (*VerifyResult, error) {
	frame, err := bitstr.Check(frame, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	var tb trace.Builder
	tb.Step("Receiver side:")
	tb.Blank()
	tb.Step("Step 1: Receive the data")
	tb.Step("Received data: %s", frame)
	tb.Blank()
	tb.Step("Step 2: Divide the received bits by the same polynomial")
	tb.Step("Polynomial: %s", c.polynomial)
	tb.Blank()
	div := divide(frame, c.polynomial)
	tb.Append(div.Trace, "")
	tb.Blank()

	zeros := bitstr.Zeros(c.Degree())
	valid := div.Remainder == zeros
	tb.Step("Step 3: Check the remainder")
	if valid {
		tb.Step("Remainder = %s (all zeros)", div.Remainder)
		tb.Step("OK: data is error-free")
	} else {
		tb.Step("Remainder = %s (not all zeros)", div.Remainder)
		tb.Step("ERROR: error detected")
	}

	return &VerifyResult{
		Frame:      frame,
		Polynomial: c.polynomial,
		Remainder:  div.Remainder,
		Valid:      valid,
		Trace:      tb.Trace(),
	}, nil
}

func (c *Codec) Send(payload string) (string, errdetect.Trace, error) {
	r, err := c.Encode(payload)
	if err != nil {
		return "", nil, err
	}
	return r.Frame, r.Trace, nil
}

func (c *Codec) Receive(frame string) (bool, errdetect.Trace, error) {
	r, err := c.Verify(frame)
	if err != nil {
		return false, nil, err
	}
	return r.Valid, r.Trace, nil
}
