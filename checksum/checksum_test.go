package checksum

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
)

func TestAddWraparound(t *testing.T) {
	test := []struct {
		name     string
		a, b     string
		raw      string
		overflow bool
		result   string
	}{
		{"no carry", "10011010", "00011101", "10110111", false, "10110111"},
		{"carry wraps to one", "11111111", "00000001", "100000000", true, "00000001"},
		{"all ones twice", "1111", "1111", "11110", true, "1111"},
		{"single bit", "1", "1", "10", true, "1"},
		{"zeros", "000", "000", "000", false, "000"},
		{"wider than a word", "1" + bitstr.Zeros(69), "1" + bitstr.Zeros(69), "1" + bitstr.Zeros(70), true, bitstr.Zeros(69) + "1"},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			ad, err := AddWraparound(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, ad.Raw)
			assert.Equal(t, tt.overflow, ad.Overflow)
			assert.Equal(t, tt.result, ad.Result)
			assert.Len(t, ad.Result, len(tt.a))
			if tt.overflow {
				assert.Equal(t, "1", ad.Carry)
				assert.Contains(t, ad.Trace, "  "+tt.raw+" (overflow)")
				assert.Equal(t, "  Result: "+tt.result, ad.Trace[len(ad.Trace)-1])
			} else {
				assert.Equal(t, "0", ad.Carry)
				assert.Equal(t, "  "+tt.result, ad.Trace[len(ad.Trace)-1])
			}
		})
	}

	t.Run("trace layout", func(t *testing.T) {
		ad, err := AddWraparound("1111", "0001")
		require.NoError(t, err)
		assert.Equal(t, errdetect.Trace{
			"  1111",
			"+ 0001",
			"------",
			"  10000 (overflow)",
			"  Carry: 1",
			"  Wrap around: 0000 + 1",
			"  Result: 0001",
		}, ad.Trace)
	})

	t.Run("invalid operands", func(t *testing.T) {
		_, err := AddWraparound("101", "10")
		assert.ErrorIs(t, err, errdetect.ErrInvalidInput)
		_, err = AddWraparound("1a1", "101")
		assert.ErrorIs(t, err, errdetect.ErrInvalidInput)
		_, err = AddWraparound("", "")
		assert.ErrorIs(t, err, errdetect.ErrInvalidInput)
	})

	t.Run("matches modular arithmetic", func(t *testing.T) {
		// for 4-bit operands the end-around sum is congruent to a+b mod 15
		for a := range 16 {
			for b := range 16 {
				ad, err := AddWraparound(bitstr.FormatUint(uint64(a), 4), bitstr.FormatUint(uint64(b), 4))
				require.NoError(t, err)
				got := 0
				for _, ch := range ad.Result {
					got = got*2 + int(ch-'0')
				}
				assert.Less(t, got, 16)
				assert.Equal(t, (a+b)%15, got%15, "%d+%d", a, b)
			}
		}
	})
}

func TestScenario(t *testing.T) {
	r, err := Encode("1001101000011101", 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"10011010", "00011101"}, r.Blocks)
	assert.Equal(t, "10110111", r.Sum)
	assert.Equal(t, "01001000", r.Checksum)
	assert.Equal(t, "100110100001110101001000", r.Frame)

	v, err := Verify(r.Frame, 8)
	require.NoError(t, err)
	assert.Equal(t, "11111111", v.Sum)
	assert.True(t, v.Valid)
	assert.Equal(t, []string{"10011010", "00011101", "01001000"}, v.Blocks)
}

func TestEncode(t *testing.T) {
	test := []struct {
		name      string
		payload   string
		blockSize int
		blocks    []string
		sum       string
		checksum  string
	}{
		{"with carry", "10110011", 4, []string{"1011", "0011"}, "1110", "0001"},
		{"padded final block", "101", 8, []string{"10100000"}, "10100000", "01011111"},
		{"padding across blocks", "101100111", 4, []string{"1011", "0011", "1000"}, "0111", "1000"},
		{"all ones", "1111", 2, []string{"11", "11"}, "11", "00"},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Encode(tt.payload, tt.blockSize)
			require.NoError(t, err)
			assert.Equal(t, tt.blocks, r.Blocks)
			assert.Equal(t, tt.sum, r.Sum)
			assert.Equal(t, tt.checksum, r.Checksum)
			assert.Equal(t, strings.Join(tt.blocks, "")+tt.checksum, r.Frame)
			assert.Equal(t, "Transmitted: "+r.Frame, r.Trace[len(r.Trace)-1])
		})
	}
}

func TestAllOnesAndFlips(t *testing.T) {
	payloads := []string{
		"1",
		"0",
		"1001101000011101",
		"10110011",
		"0000000000000",
		"111111111111111111",
		"1010010111010001011101010101",
	}
	for _, payload := range payloads {
		for blockSize := 1; blockSize <= 12; blockSize++ {
			c, err := New(WithBlockSize(blockSize))
			require.NoError(t, err)
			r, err := c.Encode(payload)
			require.NoError(t, err)

			v, err := c.Verify(r.Frame)
			require.NoError(t, err)
			assert.Equal(t, bitstr.Ones(blockSize), v.Sum, "all ones %q bs=%d", payload, blockSize)
			assert.True(t, v.Valid)

			if blockSize == 1 {
				continue
			}
			for i := range r.Frame {
				v, err := c.Verify(bitstr.Flip(r.Frame, i))
				require.NoError(t, err)
				assert.False(t, v.Valid, "flip %d of %q bs=%d", i, r.Frame, blockSize)
			}
		}
	}
}

func TestSingleBitBlocks(t *testing.T) {
	// with 1-bit blocks the modulus 2^1-1 is 1: the fold is an OR of all bits
	// and most single flips go unnoticed
	r, err := Encode("11", 1)
	require.NoError(t, err)
	assert.Equal(t, "110", r.Frame)

	v, err := Verify(bitstr.Flip(r.Frame, 0), 1)
	require.NoError(t, err)
	assert.True(t, v.Valid)

	v, err = Verify(bitstr.Flip(r.Frame, 2), 1)
	require.NoError(t, err)
	assert.True(t, v.Valid)
}

func TestUndetectedSwap(t *testing.T) {
	// addition is commutative, so reordering blocks is invisible
	r, err := Encode("1001101000011101", 8)
	require.NoError(t, err)
	swapped := r.Frame[8:16] + r.Frame[0:8] + r.Frame[16:]
	v, err := Verify(swapped, 8)
	require.NoError(t, err)
	assert.True(t, v.Valid)
}

func TestErrors(t *testing.T) {
	test := []struct {
		name string
		run  func() error
		want error
	}{
		{"empty payload", func() error { _, err := Encode("", 8); return err }, errdetect.ErrInvalidInput},
		{"non binary payload", func() error { _, err := Encode("10201", 8); return err }, errdetect.ErrInvalidInput},
		{"whitespace frame", func() error { _, err := Verify("1010 1010", 4); return err }, errdetect.ErrInvalidInput},
		{"zero block size", func() error { _, err := Encode("1", 0); return err }, errdetect.ErrInvalidConfig},
		{"negative block size", func() error { _, err := Verify("1", -8); return err }, errdetect.ErrInvalidConfig},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCodec(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8, c.BlockSize())
	assert.Equal(t, "checksum", c.Name())

	sent, received, valid, err := errdetect.Transmit(c, "1001101000011101", nil)
	require.NoError(t, err)
	assert.Equal(t, sent, received)
	assert.True(t, valid)

	_, _, valid, err = errdetect.Transmit(c, "1001101000011101", func(f string) string {
		return bitstr.Flip(f, 3)
	})
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestDeterminism(t *testing.T) {
	var (
		wg      sync.WaitGroup
		results = make([]*EncodeResult, 8)
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Encode("1010010111010001011101010101", 5)
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}
