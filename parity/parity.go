// Package parity appends a single parity bit to every data block.
//
// Unlike the other codecs the payload is not padded: a short final block is
// protected as-is, so frames are not necessarily a multiple of blockSize+1.
// A parity bit detects any odd number of flipped bits within its block and
// none of an even number.
package parity

import (
	"fmt"
	"strings"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
	"github.com/yyyoichi/errdetect/internal/trace"
)

var _ errdetect.Codec = (*Codec)(nil)

type Codec struct {
	blockSize int
	kind      Kind
}

// BlockParity is the sender-side calculation for one block.
type BlockParity struct {
	Block  string
	Ones   int
	Bit    string
	Output string
	Trace  errdetect.Trace
}

type EncodeResult struct {
	Blocks   []string
	PerBlock []BlockParity
	Frame    string
	Trace    errdetect.Trace
}

// BlockCheck is the receiver-side calculation for one received unit.
type BlockCheck struct {
	Block    string
	Data     string
	Ones     int
	Expected string
	Received string
	Valid    bool
	Trace    errdetect.Trace
}

type VerifyResult struct {
	Blocks   []string
	PerBlock []BlockCheck
	Valid    bool
	Trace    errdetect.Trace
}

// Encode is a convenience for New(WithBlockSize(blockSize), WithKind(kind)).Encode(payload).
func Encode(payload string, blockSize int, kind Kind) (*EncodeResult, error) {
	c, err := New(WithBlockSize(blockSize), WithKind(kind))
	if err != nil {
		return nil, err
	}
	return c.Encode(payload)
}

// Verify is a convenience for New(WithBlockSize(blockSize), WithKind(kind)).Verify(frame).
func Verify(frame string, blockSize int, kind Kind) (*VerifyResult, error) {
	c, err := New(WithBlockSize(blockSize), WithKind(kind))
	if err != nil {
		return nil, err
	}
	return c.Verify(frame)
}

// New returns a parity codec. Without options it uses 8-bit blocks and even parity.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{blockSize: DefaultBlockSize, kind: Even}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Codec) BlockSize() int { return c.blockSize }

func (c *Codec) Kind() Kind { return c.kind }

func (c *Codec) Name() string { return "parity" }

// Encode splits payload into blocks and appends a parity bit to each.
func (c *Codec) Encode(payload string) (*EncodeResult, error) {
	payload, err := bitstr.Check(payload, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	blocks, err := bitstr.SplitRaw(payload, c.blockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidConfig, err)
	}

	var (
		tb     trace.Builder
		per    = make([]BlockParity, len(blocks))
		frame  strings.Builder
		kind   = c.kind.String()
		nblock = len(blocks)
	)
	for i, block := range blocks {
		var bt trace.Builder
		bt.Step("Step 1: Write down the data bits")
		bt.Step("Data: %s", block)
		bt.Blank()
		bt.Step("Step 2: Count the number of 1s")
		ones := bitstr.CountOnes(block)
		bt.Step("Number of 1s: %d", ones)
		bt.Blank()
		bt.Step("Step 3: Determine parity type")
		bt.Step("Using: %s parity", kind)
		bt.Blank()
		bt.Step("Step 4: Set the parity bit")
		bit := c.kind.bit(ones)
		bt.Step("Count of 1s (%d) is %s -> parity bit = %s", ones, evenOdd(ones), bit)
		bt.Blank()
		bt.Step("Result: %s + %s = %s%s", block, bit, block, bit)

		per[i] = BlockParity{
			Block:  block,
			Ones:   ones,
			Bit:    bit,
			Output: block + bit,
			Trace:  bt.Trace(),
		}
		frame.WriteString(per[i].Output)

		tb.Step("Block %d of %d:", i+1, nblock)
		tb.Append(per[i].Trace, "  ")
		tb.Blank()
	}
	tb.Step("Transmitted: %s", frame.String())

	return &EncodeResult{
		Blocks:   blocks,
		PerBlock: per,
		Frame:    frame.String(),
		Trace:    tb.Trace(),
	}, nil
}

// Verify re-slices frame into blockSize+1 wide units and checks the trailing
// parity bit of each.
func (c *Codec) Verify(frame string) (*VerifyResult, error) {
	frame, err := bitstr.Check(frame, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	blocks, err := bitstr.SplitRaw(frame, c.blockSize+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidConfig, err)
	}

	var (
		tb    trace.Builder
		per   = make([]BlockCheck, len(blocks))
		valid = true
		kind  = c.kind.String()
	)
	for i, block := range blocks {
		var bt trace.Builder
		data, received := block[:len(block)-1], block[len(block)-1:]
		bt.Step("Received block: %s", block)
		bt.Step("Data bits: %s", data)
		bt.Step("Received parity bit: %s", received)
		bt.Blank()
		bt.Step("Count the number of 1s in data bits")
		ones := bitstr.CountOnes(data)
		bt.Step("Number of 1s: %d", ones)
		bt.Blank()
		bt.Step("Calculate expected parity bit (%s parity)", kind)
		expected := c.kind.bit(ones)
		bt.Step("Count of 1s (%d) is %s -> expected parity = %s", ones, evenOdd(ones), expected)
		bt.Blank()
		bt.Step("Comparison:")
		bt.Step("Expected parity: %s", expected)
		bt.Step("Received parity: %s", received)
		ok := expected == received
		if ok {
			bt.Step("OK: match, no error detected in this block")
		} else {
			bt.Step("ERROR: mismatch, error detected in this block")
			valid = false
		}

		per[i] = BlockCheck{
			Block:    block,
			Data:     data,
			Ones:     ones,
			Expected: expected,
			Received: received,
			Valid:    ok,
			Trace:    bt.Trace(),
		}
		tb.Step("Block %d of %d:", i+1, len(blocks))
		tb.Append(per[i].Trace, "  ")
		tb.Blank()
	}
	if valid {
		tb.Step("OK: all blocks passed the parity check")
	} else {
		tb.Step("ERROR: at least one block failed the parity check")
	}

	return &VerifyResult{
		Blocks:   blocks,
		PerBlock: per,
		Valid:    valid,
		Trace:    tb.Trace(),
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
