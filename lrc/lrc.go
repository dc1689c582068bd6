// Package lrc implements the longitudinal redundancy check: the payload is
// laid out as rows of blockSize bits and one even-parity bit is computed per
// column. Whitespace in payloads and frames is ignored, so rows may be
// entered one per line.
package lrc

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

// Column holds the bits of one column, top row first.
type Column struct {
	Index int
	Bits  string
	Ones  int
}

// Parity is the even-parity bit of the column.
func (c Column) Parity() string {
	if c.Ones%2 == 0 {
		return "0"
	}
	return "1"
}

func (c Column) Even() bool {
	return c.Ones%2 == 0
}

type EncodeResult struct {
	Blocks  []string
	Columns []Column
	LRC     string
	Frame   string
	Trace   errdetect.Trace
}

type VerifyResult struct {
	// Blocks are the received rows; the last one is the LRC row.
	Blocks  []string
	Columns []Column
	Valid   bool
	Trace   errdetect.Trace
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

func (c *Codec) Name() string { return "lrc" }

func (c *Codec) Encode(payload string) (*EncodeResult, error) {
	blocks, err := c.split(payload)
	if err != nil {
		return nil, err
	}

	var tb trace.Builder
	tb.Step("Step 1: Arrange the data in rows (each row = one block)")
	for i, b := range blocks {
		tb.Step("Row %d: %s", i+1, b)
	}
	tb.Blank()
	tb.Step("Step 2: Count the 1s in each column (vertically)")

	columns := columnsOf(blocks, c.blockSize)
	var lrc strings.Builder
	for _, col := range columns {
		tb.Blank()
		tb.Step("Column %d:", col.Index+1)
		for row := range blocks {
			tb.Step("  Row %d: %c", row+1, col.Bits[row])
		}
		tb.Step("  Total 1s: %d", col.Ones)
		tb.Step("  Number of 1s is %s -> LRC bit = %s", evenOdd(col.Ones), col.Parity())
		lrc.WriteString(col.Parity())
	}

	frame := strings.Join(blocks, "") + lrc.String()
	tb.Blank()
	tb.Step("Step 3: The column bits form the LRC")
	tb.Step("LRC: %s", lrc.String())
	tb.Blank()
	tb.Step("Step 4: Send the LRC along with the data")
	tb.Step("Data blocks: %s", strings.Join(blocks, " "))
	tb.Step("LRC: %s", lrc.String())
	tb.Step("Transmitted: %s", frame)

	return &EncodeResult{
		Blocks:  blocks,
		Columns: columns,
		LRC:     lrc.String(),
		Frame:   frame,
		Trace:   tb.Trace(),
	}, nil
}

// Verify treats the trailing LRC as one more row and requires every column
// to hold an even number of 1s.
func (c *Codec) Verify(frame string) (*VerifyResult, error) {
	blocks, err := c.split(frame)
	if err != nil {
		return nil, err
	}
	last := len(blocks) - 1

	var tb trace.Builder
	tb.Step("Receiver side verification:")
	tb.Blank()
	tb.Step("Step 1: Arrange received data in rows (including LRC)")
	for i, b := range blocks {
		if i == last {
			tb.Step("LRC row: %s", b)
		} else {
			tb.Step("Row %d: %s", i+1, b)
		}
	}
	tb.Blank()
	tb.Step("Step 2: Perform column-wise check (including LRC)")

	columns := columnsOf(blocks, c.blockSize)
	valid := true
	for _, col := range columns {
		tb.Blank()
		tb.Step("Column %d:", col.Index+1)
		for row := range blocks {
			if row == last {
				tb.Step("  LRC: %c", col.Bits[row])
			} else {
				tb.Step("  Row %d: %c", row+1, col.Bits[row])
			}
		}
		tb.Step("  Total 1s (including LRC): %d", col.Ones)
		if col.Even() {
			tb.Step("  OK: even number of 1s")
		} else {
			tb.Step("  ERROR: odd number of 1s, error in this column")
			valid = false
		}
	}

	tb.Blank()
	tb.Step("Step 3: Final verification")
	if valid {
		tb.Step("OK: all column sums are even, no error detected")
	} else {
		tb.Step("ERROR: some column sums are odd, error detected")
	}

	return &VerifyResult{
		Blocks:  blocks,
		Columns: columns,
		Valid:   valid,
		Trace:   tb.Trace(),
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
	s, err := bitstr.Check(s, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	blocks, err := bitstr.SplitBlocks(s, c.blockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdetect.ErrInvalidConfig, err)
	}
	return blocks, nil
}

func columnsOf(rows []string, width int) []Column {
	columns := make([]Column, width)
	for i := range columns {
		bits := make([]byte, len(rows))
		for r, row := range rows {
			bits[r] = row[i]
		}
		columns[i] = Column{
			Index: i,
			Bits:  string(bits),
			Ones:  bitstr.CountOnes(string(bits)),
		}
	}
	return columns
}

func evenOdd(n int) string {
	if n%2 == 0 {
		return "even"
	}
	return "odd"
}
