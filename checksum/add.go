package checksum

import (
	"fmt"
	"strings"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
	"github.com/yyyoichi/errdetect/internal/trace"
)

// Addition is one 1's-complement addition of two equal-width operands.
type Addition struct {
	A, B string
	// Raw is the plain binary sum, one bit wider than the operands when it overflowed.
	Raw      string
	Overflow bool
	Carry    string
	Result   string
	Trace    errdetect.Trace
}

// AddWraparound adds a and b as unsigned integers of len(a) bits. A carry
// out of the top bit is added back into the low-order bits (end-around
// carry). The width is not limited to a machine word.
func AddWraparound(a, b string) (*Addition, error) {
	if _, err := bitstr.Check(a, false); err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	if _, err := bitstr.Check(b, false); err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: operand widths %d and %d differ", errdetect.ErrInvalidInput, len(a), len(b))
	}
	return addWraparound(a, b), nil
}

func addWraparound(a, b string) *Addition {
	var (
		size       = len(a)
		tb         trace.Builder
		sum, carry = addBits(a, b)
		ad         = &Addition{A: a, B: b, Carry: "0"}
	)
	tb.Step("  %s", a)
	tb.Step("+ %s", b)
	tb.Step("%s", strings.Repeat("-", size+2))
	if carry == 0 {
		ad.Raw, ad.Result = sum, sum
		tb.Step("  %s", sum)
		ad.Trace = tb.Trace()
		return ad
	}

	ad.Overflow = true
	ad.Raw = "1" + sum
	ad.Carry = "1"
	tb.Step("  %s (overflow)", ad.Raw)
	tb.Step("  Carry: %s", ad.Carry)
	tb.Step("  Wrap around: %s + %s", sum, ad.Carry)
	// Two n-bit operands sum to at most 2^(n+1)-2, so after one wrap the
	// value is at most 2^n-1 and the loop body runs once.
	one := bitstr.FormatUint(1, size)
	for carry != 0 {
		sum, carry = addBits(sum, one)
	}
	ad.Result = sum
	tb.Step("  Result: %s", sum)
	ad.Trace = tb.Trace()
	return ad
}

// addBits is a ripple-carry adder over equal-width bit strings.
func addBits(a, b string) (string, byte) {
	out := make([]byte, len(a))
	var carry byte
	for i := len(a) - 1; i >= 0; i-- {
		s := (a[i] - '0') + (b[i] - '0') + carry
		out[i] = '0' + s&1
		carry = s >> 1
	}
	return string(out), carry
}

// complement flips every bit, i.e. v XOR (2^n - 1).
func complement(s string) string {
	return bitstr.XOR(s, bitstr.Ones(len(s)))
}
