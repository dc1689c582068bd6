package quality

import (
	"fmt"

	"github.com/yyyoichi/golay"

	"github.com/yyyoichi/errdetect/internal/bitstr"
)

// golayName labels the correction baseline in reports.
const golayName = "golay(24,12)"

// golayCode encodes bit strings with the extended Golay code, which corrects
// up to three errors in every 24-bit codeword.
type golayCode struct{}

func (golayCode) encode(payload string) (string, error) {
	data, size := bitstr.Pack(payload)
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	if err := enc.Encode(data, size); err != nil {
		return "", fmt.Errorf("golay encode: %w", err)
	}
	return bitstr.Unpack(encoded, enc.Bits()), nil
}

func (golayCode) decode(frame string, size int) string {
	data, n := bitstr.Pack(frame)
	var decoded []uint64
	dec := golay.NewDecoder(data, n)
	_ = dec.Decode(&decoded)
	return bitstr.Unpack(decoded, size)
}

func (golayCode) encodedLen(size int) int {
	return golay.EncodedBits(size)
}
