package castle

import (
	"errors"
	"math"
)

type fieldKind int

const (
	kindEmpty fieldKind = iota
	kindMarker
	kindEncryptedBytes
	kindByte
	kindRawAppend
	kindCompactInt
	kindRoundedByte
)

// kindTags pins each kind to its 3-bit wire tag. The browser SDK encodes
// Empty as -1 and relies on JS coercion (-1 & 7 === 7); the table reproduces
// that bit pattern without signed tricks.
var kindTags = [...]byte{
	kindEmpty:          7,
	kindMarker:         1,
	kindEncryptedBytes: 2,
	kindByte:           3,
	kindRawAppend:      4,
	kindCompactInt:     5,
	kindRoundedByte:    6,
}

// ErrInitTimeRequired is the codec's only error: an EncryptedBytes field was
// requested without the init timestamp that keys its cipher.
var ErrInitTimeRequired = errors.New("initTime is required")

type fieldValue struct {
	Num float64
	Raw []byte
}

func numVal(n float64) fieldValue { return fieldValue{Num: n} }
func rawVal(b []byte) fieldValue  { return fieldValue{Raw: b} }

func fieldHeader(index int, kind fieldKind) byte {
	return byte((index&31)<<3) | (kindTags[kind] & 7)
}

func encodeField(index int, kind fieldKind, value fieldValue, initTime float64) ([]byte, error) {
	h := fieldHeader(index, kind)
	switch kind {
	case kindEmpty, kindMarker:
		return []byte{h}, nil
	case kindByte:
		return []byte{h, byte(clampInt(int(value.Num), 0, 255))}, nil
	case kindRoundedByte:
		return []byte{h, byte(clampInt(int(math.Round(value.Num)), 0, 255))}, nil
	case kindCompactInt:
		v := int(value.Num)
		if v < 0 {
			v = 0
		}
		if v <= 127 {
			return []byte{h, byte(v)}, nil
		}
		v &= 0x7FFF
		return []byte{h, 0x80 | byte(v>>8), byte(v)}, nil
	case kindEncryptedBytes:
		if initTime <= 0 {
			return nil, ErrInitTimeRequired
		}
		ct := xxteaEncrypt(value.Raw, fieldKey(index, initTime))
		out := make([]byte, 0, 2+len(ct))
		out = append(out, h, byte(len(ct)))
		return append(out, ct...), nil
	default: // kindRawAppend
		return append([]byte{h}, value.Raw...), nil
	}
}

// fieldKey builds the per-field XXTEA key. Only the first four words take
// part in the mixing; the constant tail matches the SDK's key layout.
func fieldKey(index int, initTime float64) []uint32 {
	return []uint32{
		uint32(index),
		uint32(initTime),
		fieldKeyC1, fieldKeyC2, fieldKeyC3, fieldKeyC4, fieldKeyC5,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
