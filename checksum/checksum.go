// Package checksum implements the 1's-complement block checksum.
//
// The sender folds all data blocks with end-around-carry addition and
// appends the complement of the sum. The receiver folds every block of the
// frame, checksum included; an intact frame folds to all ones.
package checksum

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
}

type EncodeResult struct {
	Blocks   []string
	Sum      string
	Checksum string
	Frame    string
	Trace    errdetect.Trace
}

type VerifyResult struct {
	Blocks []string
	Sum    string
	Valid  bool
	Trace  errdetect.Trace
}

// Encode is a convenience for New(WithBlockSize(blockSize)).Encode(payload).
func Encode(payload string, blockSize int) (*EncodeResult, error) {
	c, err := New(WithBlockSize(blockSize))
	if err != nil {
		return nil, err
	}
	return c.Encode(payload)
}

// Verify is a convenience for New(WithBlockSize(blockSize)).Verify(frame).
func Verify(frame string, blockSize int) (*VerifyResult, error) {
	c, err := New(WithBlockSize(blockSize))
	if err != nil {
		return nil, err
	}
	return c.Verify(frame)
}

// New returns a checksum codec using 8-bit blocks unless configured otherwise.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Codec) BlockSize() int { return c.blockSize }

func (c *Codec) Name() string { return "checksum" }

// Encode pads payload to whole blocks, folds them and appends the 1's
// complement of the sum.
func (c *Codec) Encode(payload string) (*EncodeResult, error) {
	blocks, err := c.split(payload)
	if err != nil {
		return nil, err
	}

	var tb trace.Builder
	tb.Step("Step 1: Divide the data into equal-sized blocks")
	c.listBlocks(&tb, blocks)
	tb.Blank()
	tb.Step("Step 2: Add all blocks together (binary addition)")
	sum := c.fold(&tb, blocks)
	tb.Blank()
	tb.Step("Sum after adding all blocks: %s", sum)

	tb.Blank()
	tb.Step("Step 3: Take the 1's complement (flip all bits)")
	cks := complement(sum)
	tb.Step("Sum:             %s", sum)
	tb.Step("1's complement:  %s", cks)
	tb.Step("This is the checksum")

	frame := strings.Join(blocks, "") + cks
	tb.Blank()
	tb.Step("Step 4: Send data + checksum together")
	tb.Step("Data blocks: %s", strings.Join(blocks, " "))
	tb.Step("Checksum: %s", cks)
	tb.Step("Transmitted: %s", frame)

	return &EncodeResult{
		Blocks:   blocks,
		Sum:      sum,
		Checksum: cks,
		Frame:    frame,
		Trace:    tb.Trace(),
	}, nil
}

// Verify folds every block of frame, the trailing checksum included, and
// reports whether the sum is all ones.
func (c *Codec) Verify(frame string) (*VerifyResult, error) {
	blocks, err := c.split(frame)
	if err != nil {
		return nil, err
	}

	var tb trace.Builder
	tb.Step("Receiver side verification:")
	tb.Blank()
	tb.Step("Step 1: Divide received data into blocks")
	c.listBlocks(&tb, blocks)
	tb.Blank()
	tb.Step("Step 2: Add all blocks together (including checksum)")
	sum := c.fold(&tb, blocks)
	tb.Blank()
	tb.Step("Final sum: %s", sum)

	tb.Blank()
	tb.Step("Step 3: Check if result is all 1s")
	allOnes := bitstr.Ones(c.blockSize)
	tb.Step("Expected (all 1s): %s", allOnes)
	tb.Step("Received sum:      %s", sum)
	valid := sum == allOnes
	tb.Blank()
	if valid {
		tb.Step("OK: sum is all 1s, no error detected")
	} else {
		tb.Step("ERROR: sum is not all 1s, error detected")
	}

	return &VerifyResult{
		Blocks: blocks,
		Sum:    sum,
		Valid:  valid,
		Trace:  tb.Trace(),
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

func (c *Codec) split(s string) ([]string, error) {
	s, err := bitstr.Check(s, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	blocks, err := bitstr.SplitBlocks(s, c.blockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidConfig, err)
	}
	return blocks, nil
}

func (c *Codec) listBlocks(tb *trace.Builder, blocks []string) {
	for i, b := range blocks {
		tb.Step("Block %d: %s", i+1, b)
	}
}

// fold adds the blocks left to right, seeded with the first block.
func (c *Codec) fold(tb *trace.Builder, blocks []string) string {
	sum := blocks[0]
	tb.Step("Start with Block 1: %s", sum)
	for i := 1; i < len(blocks); i++ {
		tb.Blank()
		tb.Step("Adding Block %d:", i+1)
		ad := addWraparound(sum, blocks[i])
		tb.Append(ad.Trace, "")
		sum = ad.Result
	}
	return sum
}
