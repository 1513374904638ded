package castle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXXTEAEncrypt_Deterministic(t *testing.T) {
	key := []uint32{1, 2, 3, 4}
	data := []byte("hello xxtea world")
	a := xxteaEncrypt(data, key)
	b := xxteaEncrypt(data, key)
	assert.Equal(t, a, b)
}

func TestXXTEAEncrypt_PaddingToWordBoundary(t *testing.T) {
	key := []uint32{1, 2, 3, 4}
	tests := []struct {
		inLen  int
		outLen int
	}{
		{0, 0},
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{17, 20},
	}
	for _, tt := range tests {
		out := xxteaEncrypt(make([]byte, tt.inLen), key)
		assert.Len(t, out, tt.outLen, "input length %d", tt.inLen)
	}
}

func TestXXTEAEncrypt_SingleWordPassthrough(t *testing.T) {
	key := []uint32{1, 2, 3, 4}
	// One word or less is returned zero-padded but unencrypted.
	assert.Equal(t, []byte{1, 2, 3, 0}, xxteaEncrypt([]byte{1, 2, 3}, key))
	assert.Equal(t, []byte{9, 8, 7, 6}, xxteaEncrypt([]byte{9, 8, 7, 6}, key))
	assert.Empty(t, xxteaEncrypt(nil, key))
}

func TestXXTEAEncrypt_Avalanche(t *testing.T) {
	key := []uint32{0xDEADBEEF, 0xCAFEBABE, 0x12345678, 0x9ABCDEF0}
	data := make([]byte, 32)
	base := xxteaEncrypt(data, key)

	flipped := make([]byte, 32)
	copy(flipped, data)
	flipped[0] ^= 1
	changed := xxteaEncrypt(flipped, key)
	require.Len(t, changed, len(base))
	assert.NotEqual(t, base, changed)

	// Ciphertext must never equal the plaintext for multi-word input.
	assert.NotEqual(t, data, base)
}

func TestXXTEAEncrypt_KeySensitivity(t *testing.T) {
	data := []byte("sixteen byte msg")
	a := xxteaEncrypt(data, []uint32{1, 2, 3, 4})
	b := xxteaEncrypt(data, []uint32{1, 2, 3, 5})
	assert.NotEqual(t, a, b)
}

func TestXXTEAEncrypt_ShortKeyPadded(t *testing.T) {
	data := []byte("sixteen byte msg")
	// A short key behaves like the same key zero-extended to four words.
	a := xxteaEncrypt(data, []uint32{7, 11})
	b := xxteaEncrypt(data, []uint32{7, 11, 0, 0})
	assert.Equal(t, a, b)
}

func TestXXTEAEncrypt_LongKeyTailIgnored(t *testing.T) {
	data := []byte("sixteen byte msg")
	// fieldKey carries seven words but the key index (p&3)^e never leaves
	// 0..3, so only the first four words participate.
	a := xxteaEncrypt(data, []uint32{1, 2, 3, 4, 5, 6, 7})
	b := xxteaEncrypt(data, []uint32{1, 2, 3, 4})
	assert.Equal(t, a, b)
}

func TestXXTEAEncrypt_DoesNotMutateInput(t *testing.T) {
	data := []byte("do not touch me!")
	orig := append([]byte{}, data...)
	xxteaEncrypt(data, []uint32{1, 2, 3, 4})
	assert.Equal(t, orig, data)
}
