package castle

// noData marks a behavioral metric the simulated session never observed.
// Callers map it to raw byte 0 before quantization; the quantizer itself
// never sees negative input.
const noData = -1

// quantizeFloat reduces v to a small exponent/mantissa code by repeated
// halving and doubling until the mantissa lands in [1,2). The SDK does the
// normalization arithmetically rather than by pulling IEEE-754 bits, so
// fidelity requires the same loop here. The format has no negative exponents:
// sub-1 values keep their normalized mantissa and clamp the exponent at 0.
func quantizeFloat(expBits, manBits int, v float64) int {
	if v <= 0 {
		return 0
	}
	exp := 0
	m := v
	for m >= 2 {
		m /= 2
		exp++
	}
	for m < 1 {
		m *= 2
		exp--
	}
	maxExp := (1 << expBits) - 1
	if exp > maxExp {
		exp = maxExp
	}
	if exp < 0 {
		exp = 0
	}
	frac := m - 1
	mant := 0
	for i := 0; i < manBits; i++ {
		frac *= 2
		bit := int(frac)
		mant = mant<<1 | bit
		frac -= float64(bit)
	}
	return exp<<manBits | mant
}

// encodeFloatVal packs a non-negative metric into one tagged byte:
// values up to 15 get a 2-bit exponent and 4-bit mantissa under tag 01,
// larger values a 4-bit exponent and 3-bit mantissa under tag 1.
func encodeFloatVal(v float64) byte {
	if v <= 15 {
		return 0x40 | byte(quantizeFloat(2, 4, v)&0x3F)
	}
	return 0x80 | byte(quantizeFloat(4, 3, v)&0x7F)
}
