package castle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizeFloat(t *testing.T) {
	tests := []struct {
		name    string
		expBits int
		manBits int
		v       float64
		want    int
	}{
		{"zero", 2, 4, 0, 0},
		{"one", 2, 4, 1, 0},
		{"two", 2, 4, 2, 1 << 4},
		{"three", 2, 4, 3, 1<<4 | 8},
		{"fifteen", 2, 4, 15, 3<<4 | 14},
		{"sixteen wide", 4, 3, 16, 4 << 3},
		{"exponent clamps", 2, 4, 1e9, 3 << 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantizeFloat(tt.expBits, tt.manBits, tt.v)
			// Exponent clamps but the mantissa still contributes.
			if tt.name == "exponent clamps" {
				assert.GreaterOrEqual(t, got, tt.want)
				assert.Less(t, got, 1<<(tt.expBits+tt.manBits))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantizeFloat_SubOneValuesKeepMantissa(t *testing.T) {
	// Sub-1 inputs normalize upward into [1,2) and clamp the exponent at 0;
	// only exact binary fractions of 1 collapse to code 0.
	tests := []struct {
		v    float64
		want int
	}{
		{0.1, 9},  // m=1.6 -> frac .6 -> 1001
		{0.3, 3},  // m=1.2 -> frac .2 -> 0011
		{0.5, 0},  // m=1.0 exactly
		{0.7, 6},  // m=1.4 -> frac .4 -> 0110
		{0.75, 8}, // m=1.5 -> frac .5 -> 1000
		{0.9, 12}, // m=1.8 -> frac .8 -> 1100
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quantizeFloat(2, 4, tt.v), "v=%v", tt.v)
	}
	for _, v := range []float64{0.1, 0.3, 0.7, 0.9, 0.99} {
		assert.NotEqual(t, 0, quantizeFloat(2, 4, v), "v=%v must not collapse to 0", v)
	}
}

func TestQuantizeFloat_NegativeInputIsZero(t *testing.T) {
	assert.Equal(t, 0, quantizeFloat(2, 4, -3.5))
}

func TestQuantizeFloat_CodeFitsBitWidth(t *testing.T) {
	for _, v := range []float64{0, 0.1, 0.9, 1, 1.5, 3.7, 14.99, 15, 100, 5000} {
		assert.Less(t, quantizeFloat(2, 4, v), 1<<6, "v=%v", v)
		assert.Less(t, quantizeFloat(4, 3, v), 1<<7, "v=%v", v)
	}
}

func TestEncodeFloatVal_RangeTags(t *testing.T) {
	for _, v := range []float64{0, 1, 5, 10, 15} {
		b := encodeFloatVal(v)
		assert.Equal(t, byte(0x40), b&0xC0, "v=%v should carry the small-range tag", v)
	}
	for _, v := range []float64{16, 50, 100, 200} {
		b := encodeFloatVal(v)
		assert.Equal(t, byte(0x80), b&0x80, "v=%v should carry the wide-range tag", v)
	}
}

func TestEncodeFloatVal_ZeroIsBareTag(t *testing.T) {
	assert.Equal(t, byte(0x40), encodeFloatVal(0))
}
