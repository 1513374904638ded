package castle

import "time"

// Wire part indices of the three fingerprint sections. The verifier
// dispatches on these, they are not ordinals.
const (
	partDevice  = 0
	partBrowser = 4
	partTiming  = 7
)

// sectionBuilder accumulates encoded fields under a single section header
// byte (partIndex<<5 | fieldCount&31).
type sectionBuilder struct {
	part     int
	initTime float64
	fields   []byte
	count    int
	err      error
}

func newSection(part int, initTime float64) *sectionBuilder {
	return &sectionBuilder{part: part, initTime: initTime}
}

func (s *sectionBuilder) add(index int, kind fieldKind, v fieldValue) {
	if s.err != nil {
		return
	}
	b, err := encodeField(index, kind, v, s.initTime)
	if err != nil {
		s.err = err
		return
	}
	s.fields = append(s.fields, b...)
	s.count++
}

func (s *sectionBuilder) bytes() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]byte, 0, 1+len(s.fields))
	out = append(out, byte(s.part<<5)|byte(s.count&31))
	return append(out, s.fields...), nil
}

// Opaque hash placeholders. These byte sequences were captured from one real
// browser session; the verifier treats them as opaque, so they are carried as
// constants rather than derived.
var (
	canvasHash = []byte{
		0x7b, 0x03, 0xc1, 0x9e, 0x44, 0xa2, 0x58, 0x0f,
		0x91, 0x6d, 0x2a, 0xe7, 0x33, 0xc8, 0x5b, 0x14,
	}
	webglHash = []byte{
		0x2f, 0xd6, 0x81, 0x4a, 0xbc, 0x09, 0xe3, 0x77,
		0x50, 0x1c, 0x98, 0x25, 0xaf, 0x6b, 0xd2, 0x40,
	}
	pluginsHash = []byte{
		0xc4, 0x1f, 0x6a, 0x93, 0x0d, 0xe8, 0x52, 0xb7,
		0x39, 0x84, 0xf0, 0x2b, 0x5e, 0xc7, 0x11, 0xa6,
	}
)

// Feature-probe bit positions set in a modern desktop Chrome: WebGL2, WebRTC,
// WebAudio, localStorage, sessionStorage, indexedDB, serviceWorker,
// WebAssembly, Notification, gamepad, WebShare off-positions stay clear.
var featureBits = []int{0, 1, 2, 3, 4, 5, 6, 8, 9, 12, 14, 17, 21, 26, 30}

// Per-codec playability, two bits each, packed big-endian:
// h264, hevc, vp8, vp9, av1, aac, opus, mp3 (0 no, 1 maybe, 2 probably).
var codecPlayability = []byte{2, 1, 2, 2, 1, 2, 2, 2}

func packBits(positions []int, size int) []byte {
	out := make([]byte, size)
	for _, pos := range positions {
		if pos/8 < size {
			out[pos/8] |= 1 << (7 - pos%8)
		}
	}
	return out
}

func packCodecs(statuses []byte) []byte {
	out := make([]byte, (len(statuses)+3)/4)
	for i, s := range statuses {
		out[i/4] |= (s & 3) << (6 - uint(i%4)*2)
	}
	return out
}

func packDims(w, h int) []byte {
	w = clampInt(w, 0, 0xFFFF)
	h = clampInt(h, 0, 0xFFFF)
	return []byte{byte(w >> 8), byte(w), byte(h >> 8), byte(h)}
}

func buildDeviceSection(p *Profile, initTime float64) ([]byte, error) {
	s := newSection(partDevice, initTime)
	s.add(0, kindByte, numVal(float64(platformCode(p.Platform))))
	s.add(1, kindByte, numVal(float64(vendorCode(p.Vendor))))
	s.add(2, kindEncryptedBytes, rawVal([]byte(p.Locale)))
	s.add(3, kindCompactInt, numVal(float64(len(p.Languages))))
	s.add(4, kindRoundedByte, numVal(p.DeviceMemory))
	s.add(5, kindCompactInt, numVal(float64(p.HardwareConcurrency)))
	s.add(6, kindCompactInt, numVal(float64(p.ColorDepth)))
	s.add(7, kindRoundedByte, numVal(p.PixelRatio*10))
	s.add(8, kindRawAppend, rawVal(packDims(p.ScreenWidth, p.ScreenHeight)))
	if p.AvailWidth == p.ScreenWidth && p.AvailHeight == p.ScreenHeight {
		// Marker stands in for "available equals screen", no pair follows.
		s.add(9, kindMarker, fieldValue{})
	} else {
		s.add(9, kindRawAppend, rawVal(packDims(p.AvailWidth, p.AvailHeight)))
	}
	s.add(10, kindByte, numVal(float64(p.MaxTouchPoints)))
	if p.MaxTouchPoints > 0 {
		s.add(11, kindMarker, fieldValue{})
	} else {
		s.add(11, kindEmpty, fieldValue{})
	}
	s.add(12, kindEmpty, fieldValue{}) // oscpu, undefined outside Firefox
	s.add(13, kindEncryptedBytes, rawVal([]byte(p.GPURenderer)))
	s.add(14, kindRawAppend, rawVal(webglHash))
	s.add(15, kindRawAppend, rawVal(canvasHash))
	s.add(16, kindCompactInt, numVal(0)) // orientation angle
	s.add(17, kindByte, numVal(3))       // localStorage|sessionStorage
	return s.bytes()
}

func buildBrowserSection(p *Profile, initTime float64, userAgent string) ([]byte, error) {
	s := newSection(partBrowser, initTime)
	s.add(0, kindRawAppend, rawVal(encryptUserAgent(userAgent, initTime)))
	s.add(1, kindRawAppend, rawVal(packBits(featureBits, 4)))
	s.add(2, kindRawAppend, rawVal(packCodecs(codecPlayability)))
	s.add(3, kindRawAppend, rawVal(pluginsHash))
	s.add(4, kindCompactInt, numVal(5))    // plugin count
	s.add(5, kindByte, numVal(1))          // pdf viewer
	s.add(6, kindByte, numVal(1))          // cookies enabled
	s.add(7, kindEmpty, fieldValue{})      // doNotTrack unset
	s.add(8, kindMarker, fieldValue{})     // navigator.webdriver absent
	s.add(9, kindCompactInt, numVal(2))    // history length
	s.add(10, kindByte, numVal(1))         // connection type: ethernet/wifi
	s.add(11, kindCompactInt, numVal(100)) // downlink, 0.1 Mbps units
	s.add(12, kindByte, numVal(2))         // rtt bucket
	s.add(13, kindCompactInt, numVal(2))   // mime types
	return s.bytes()
}

// encryptUserAgent is the one string that bypasses the generic EncryptedBytes
// kind: its ciphertext can exceed the one-byte length prefix, so it is
// wrapped with a 16-bit length and appended raw.
func encryptUserAgent(ua string, initTime float64) []byte {
	ct := xxteaEncrypt([]byte(ua), fieldKey(0, initTime))
	out := make([]byte, 0, 2+len(ct))
	out = append(out, byte(len(ct)>>8), byte(len(ct)))
	return append(out, ct...)
}

func buildTimingSection(p *Profile, initMs, sendMs int64) ([]byte, error) {
	now := time.UnixMilli(sendMs)
	offsetUnits, dstUnits := timezoneUnits(p.Timezone, now)
	elapsed := sendMs - initMs
	if elapsed < 0 {
		elapsed = 0
	}
	domReady := initMs%400 + 250

	s := newSection(partTiming, float64(initMs)/1000)
	s.add(0, kindRawAppend, rawVal(encodeTimestampBytes(initMs)))
	s.add(1, kindRawAppend, rawVal(encodeTimestampBytes(sendMs)))
	s.add(2, kindCompactInt, numVal(float64(elapsed/100)))
	s.add(3, kindCompactInt, numVal(float64(offsetUnits)))
	s.add(4, kindCompactInt, numVal(float64(dstUnits)))
	s.add(5, kindCompactInt, numVal(float64(domReady)))
	s.add(6, kindCompactInt, numVal(float64(domReady+180)))
	s.add(7, kindByte, numVal(0))       // navigation type
	s.add(8, kindCompactInt, numVal(0)) // redirect count
	return s.bytes()
}
