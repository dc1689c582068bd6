package bitstr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	test := []struct {
		name       string
		in         string
		whitespace bool
		exp        string
		err        error
	}{
		{"plain", "1011", false, "1011", nil},
		{"empty", "", false, "", ErrEmpty},
		{"letters", "10a1", false, "", ErrNotBinary},
		{"digit two", "102", false, "", ErrNotBinary},
		{"space rejected", "10 11", false, "", ErrNotBinary},
		{"space stripped", "10 11\n0011\t1", true, "101100111", nil},
		{"only whitespace", " \n\t", true, "", ErrEmpty},
		{"whitespace with junk", "10 x1", true, "", ErrNotBinary},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.in, tt.whitespace)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				assert.False(t, Validate(tt.in, tt.whitespace))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
			assert.True(t, Validate(tt.in, tt.whitespace))
		})
	}
}

func TestSplit(t *testing.T) {
	t.Run("padded", func(t *testing.T) {
		blocks, err := SplitBlocks("1011001", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "100", "100"}, blocks)

		blocks, err = SplitBlocks("101100", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "100"}, blocks)
	})
	t.Run("raw", func(t *testing.T) {
		blocks, err := SplitRaw("1011001", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "100", "1"}, blocks)
	})
	t.Run("block count", func(t *testing.T) {
		for n := 1; n < 20; n++ {
			for size := 1; size < 10; size++ {
				blocks, err := SplitBlocks(Ones(n), size)
				require.NoError(t, err)
				assert.Len(t, blocks, (n+size-1)/size)
				for _, b := range blocks {
					assert.Len(t, b, size)
				}
			}
		}
	})
	t.Run("bad size", func(t *testing.T) {
		for _, size := range []int{0, -1} {
			_, err := SplitBlocks("1", size)
			assert.ErrorIs(t, err, ErrBlockSize)
			_, err = SplitRaw("1", size)
			assert.ErrorIs(t, err, ErrBlockSize)
		}
	})
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 4, CountOnes("1011001"))
	assert.Equal(t, 0, CountOnes(""))

	assert.Equal(t, "00000101", FormatUint(5, 8))
	assert.Equal(t, "100000000", FormatUint(256, 8), "overflow is surfaced, not truncated")
	assert.Equal(t, "0", FormatUint(0, 1))

	assert.Equal(t, "0011", PadLeft("11", 4))
	assert.Equal(t, "1100", PadRight("11", 4))
	assert.Equal(t, "111", PadLeft("111", 2))
	assert.Equal(t, "", Zeros(-1))

	assert.Equal(t, "0010", Flip("1011", 0, 3))
	assert.Equal(t, "1011", Flip("1011", 1, 1))
	assert.Equal(t, "1011", Flip("1011", -1, 4))

	assert.Equal(t, "0110", XOR("1100", "1010"))
}

func TestConv(t *testing.T) {
	test := []struct {
		data []byte
		exp  string
	}{
		{data: []byte{0b10101010}, exp: "10101010"},
		{data: []byte{0b11110000, 0b00001111}, exp: "1111000000001111"},
		{data: []byte("Hi"), exp: "0100100001101001"},
		{data: []byte{}, exp: ""},
	}
	for _, tt := range test {
		bits := FromBytes(tt.data)
		assert.Equal(t, tt.exp, bits)
		assert.Equal(t, tt.data, ToBytes(bits))
	}
	assert.Equal(t, []byte{0b10100000}, ToBytes("101"))
}

func TestPack(t *testing.T) {
	for _, s := range []string{
		"1",
		"0110",
		"1001101000011101",
		Ones(64) + "01",
		FromBytes([]byte("hello world!")),
	} {
		data, n := Pack(s)
		assert.Equal(t, len(s), n)
		assert.Equal(t, s, Unpack(data, n))
	}
}
