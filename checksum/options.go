package checksum

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
)

const DefaultBlockSize = 8

type Option func(*Codec) error

// WithBlockSize sets the width of one addend. The checksum has the same width.
func WithBlockSize(n int) Option {
	return func(c *Codec) error {
		if n <= 0 {
			return fmt.Errorf("%w: block size %d", errdetect.ErrInvalidConfig, n)
		}
		c.blockSize = n
		return nil
	}
}
