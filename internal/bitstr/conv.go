package bitstr

import "github.com/yyyoichi/bitstream-go"

// FromBytes expands b into a bit string, 8 bits per byte, MSB first.
func FromBytes(b []byte) string {
	bits := make([]byte, 0, len(b)*8)
	for _, bb := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, '0'+(bb>>uint(i))&1)
		}
	}
	return string(bits)
}

// ToBytes packs s into bytes, MSB first. A trailing partial byte is padded
// with zero bits.
func ToBytes(s string) []byte {
	// calculate padded length without modifying input
	n := len(s)
	paddedLen := n
	if n%8 != 0 {
		paddedLen += 8 - (n % 8)
	}
	padded := PadRight(s, paddedLen)

	out := make([]byte, paddedLen/8)
	for i := 0; i < len(out); i++ {
		var v byte
		for j := 0; j < 8; j++ {
			if padded[i*8+j] == '1' {
				v |= 1 << uint(7-j)
			}
		}
		out[i] = v
	}
	return out
}

// Pack writes s into a uint64 bit stream and returns the words with the
// number of valid bits.
func Pack(s string) ([]uint64, int) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := 0; i < len(s); i++ {
		w.WriteBool(s[i] == '1')
	}
	return w.Data(), w.Bits()
}

// Unpack reads the first n bits of data back into a bit string.
func Unpack(data []uint64, n int) string {
	r := bitstream.NewBitReader(data, 0, 0)
	r.SetBits(n)
	out := make([]byte, n)
	for i := range out {
		bit, _ := r.ReadBitAt(i)
		if bit {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
