package castle

import "math/rand/v2"

// DOM event vocabulary. Events that carry a target element get the 0x80 flag
// on their id and one extra byte naming the target.
var eventVocab = []struct {
	id          byte
	needsTarget bool
}{
	{0, false},  // mousemove
	{1, true},   // mousedown
	{2, true},   // mouseup
	{3, true},   // click
	{4, false},  // scroll
	{5, true},   // keydown
	{6, true},   // keyup
	{7, false},  // focus
	{8, false},  // blur
	{9, true},   // touchstart
	{10, false}, // visibilitychange
	{11, true},  // input
}

// unknownTarget is the sentinel for events whose target element the
// simulator never resolves to a tracked node.
const unknownTarget = 0xFF

// generateEventLog emits a synthetic session's DOM event stream:
// [totalLength:u16][0x00][count:u16][events...].
func generateEventLog(rnd *rand.Rand) []byte {
	count := 30 + rnd.IntN(41)
	events := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		ev := eventVocab[rnd.IntN(len(eventVocab))]
		if ev.needsTarget {
			events = append(events, ev.id|0x80, unknownTarget)
		} else {
			events = append(events, ev.id)
		}
	}
	body := make([]byte, 0, 3+len(events))
	body = append(body, 0x00, byte(count>>8), byte(count))
	body = append(body, events...)
	out := make([]byte, 0, 2+len(body))
	out = append(out, byte(len(body)>>8), byte(len(body)))
	return append(out, body...)
}

const behaviorTag = 0xB1

// Interaction categories claimed by the simulated session.
const (
	catMouse uint16 = 1 << iota
	catClick
	catKey
	catScroll
	catTouch
	catFocus
)

// buildBehavioralData packs the session's interaction statistics: a tagged
// category bitfield, a fixed array of quantized float metrics (touch metrics
// stay noData on desktop profiles and map to raw 0), and small event counts
// with the count-array length as the trailing byte.
func buildBehavioralData(rnd *rand.Rand) []byte {
	mask := catMouse | catClick | catKey | catScroll | catFocus

	span := func(lo, hi float64) float64 {
		return lo + rnd.Float64()*(hi-lo)
	}
	metrics := []float64{
		span(4, 14),     // mousemove rate, events/s
		span(18, 90),    // mousemove interval mean, ms
		span(5, 40),     // mousemove interval stddev
		span(0.2, 2.5),  // pointer velocity mean, px/ms
		span(0.1, 1.2),  // pointer velocity stddev
		span(300, 2400), // click interval mean, ms
		span(40, 700),   // click interval stddev
		span(60, 140),   // button press duration mean
		span(55, 130),   // key hold mean, ms
		span(8, 45),     // key hold stddev
		span(90, 350),   // inter-key interval mean
		span(20, 160),   // inter-key interval stddev
		span(30, 120),   // scroll delta mean, px
		span(5, 60),     // scroll delta stddev
		noData,          // touch pressure mean
		noData,          // touch duration mean
	}

	out := make([]byte, 0, 3+len(metrics)+8)
	out = append(out, behaviorTag, byte(mask>>8), byte(mask))
	for _, m := range metrics {
		if m < 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, encodeFloatVal(m))
	}

	counts := []int{
		40 + rnd.IntN(180), // mousemoves
		2 + rnd.IntN(12),   // clicks
		8 + rnd.IntN(60),   // keydowns
		1 + rnd.IntN(20),   // scrolls
		0,                  // touches
	}
	for _, c := range counts {
		out = append(out, byte(clampInt(c, 0, 255)))
	}
	return append(out, byte(len(counts)))
}
