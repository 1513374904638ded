package castle

import "encoding/binary"

const xxteaDelta uint32 = 0x9E3779B9

// xxteaEncrypt runs corrected block TEA over data interpreted as little-endian
// 32-bit words, zero-padded to a word boundary. Buffers of one word or less
// come back as the padded input unchanged: the algorithm needs at least two
// words to mix, and the SDK ships such buffers through untouched rather than
// treating them as an error.
func xxteaEncrypt(data []byte, key []uint32) []byte {
	padded := make([]byte, (len(data)+3)&^3)
	copy(padded, data)
	if len(padded) <= 4 {
		return padded
	}

	k := key
	if len(k) < 4 {
		k = append(append([]uint32{}, key...), make([]uint32, 4-len(key))...)
	}

	n := len(padded) / 4
	v := make([]uint32, n)
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(padded[i*4:])
	}

	rounds := 6 + 52/n
	var sum uint32
	z := v[n-1]
	for q := 0; q < rounds; q++ {
		sum += xxteaDelta
		e := (sum >> 2) & 3
		for p := 0; p < n; p++ {
			y := v[(p+1)%n]
			mx := ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (k[(uint32(p)&3)^e] ^ z))
			v[p] += mx
			z = v[p]
		}
	}

	out := make([]byte, len(padded))
	for i, w := range v {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
