package castle

import "fmt"

// epochOffset shifts token timestamps to the SDK's private epoch
// (2019-01-01T00:00:00Z) so they fit 28 bits.
const epochOffset = 1546300800

const maxTimestamp = 0x0FFFFFFF

func clampTimestamp(ms int64) uint32 {
	s := ms/1000 - epochOffset
	if s < 0 {
		s = 0
	}
	if s > maxTimestamp {
		s = maxTimestamp
	}
	return uint32(s)
}

func encodeTimestampBytes(ms int64) []byte {
	s := clampTimestamp(ms)
	return []byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
}

// encodeTimestampEncrypted obfuscates the clamped timestamp and the
// millisecond slice (last three decimal digits of ms) under the 4-bit key k.
// Each value drops its leading hex digit (always 0 after clamping), XORs the
// remaining nibbles with k and appends k's own hex digit, so the last nibble
// of each half is the decryption key itself.
func encodeTimestampEncrypted(ms int64, k byte) string {
	msPart := ms % 1000
	if msPart < 0 {
		msPart = 0
	}
	tsHex := fmt.Sprintf("%08x", clampTimestamp(ms))[1:]
	msHex := fmt.Sprintf("%04x", msPart)[1:]
	return obfuscateNibbles(tsHex, k) + obfuscateNibbles(msHex, k)
}

func obfuscateNibbles(digits string, k byte) string {
	out := make([]byte, 0, len(digits)+1)
	for i := 0; i < len(digits); i++ {
		out = append(out, hexDigit((hexVal(digits[i])^k)&0xF))
	}
	return string(append(out, hexDigit(k&0xF)))
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + n - 10
}
