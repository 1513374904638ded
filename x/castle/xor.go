package castle

import "encoding/hex"

// deriveAndXor takes the first sliceLen hex characters of keyHex, rotates
// them left by the value of rotNibble modulo sliceLen, decodes the rotated
// slice to bytes and XORs it cyclically over data. Both obfuscation layers of
// the token payload go through here, once keyed by the encrypted send
// timestamp and once by the session UUID.
func deriveAndXor(keyHex string, sliceLen int, rotNibble byte, data []byte) []byte {
	s := keyHex[:sliceLen]
	rot := int(hexVal(rotNibble)) % sliceLen
	rotated := s[rot:] + s[:rot]
	key, _ := hex.DecodeString(rotated)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}
