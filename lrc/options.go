package lrc

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
)

const DefaultBlockSize = 8

type Option func(*Codec) error

// WithBlockSize sets the row width, which is also the width of the LRC.
func WithBlockSize(n int) Option {
	return func(c *Codec) error {
		if n <= 0 {
			return fmt.Errorf("%w: block size %d", errdetect.ErrInvalidConfig, n)
		}
		c.blockSize = n
		return nil
	}
}
