// Package castle generates the device-fingerprint request token the
// platform's anti-automation SDK (v11 wire format) expects during login.
// The whole pipeline runs offline: fingerprint sections, a synthetic event
// log and behavioral statistics are packed, double-XOR obfuscated,
// XXTEA-encrypted, framed and Base64URL-encoded. One call produces one token
// with fresh randomness; nothing is shared between calls.
package castle

import (
	cryptorand "crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Wire-format constants tied to the counterpart SDK version. A version bump
// on their side changes all of these together.
const (
	tokenVersion byte   = 0x01
	sdkVersion   uint16 = 0x0B01
	publisherKey        = "pk_KoeuSNJiTJ8VcbcuNIN9"
)

// Whole-payload XXTEA key.
var payloadKey = []uint32{0x3C6EF372, 0xDAA66D2B, 0x5F356495, 0x2D239D71}

// Constant tail of every per-field key (see fieldKey).
const (
	fieldKeyC1 uint32 = 0x8F1BBCDC
	fieldKeyC2 uint32 = 0xCA62C1D6
	fieldKeyC3 uint32 = 0x6ED9EBA1
	fieldKeyC4 uint32 = 0x5A827999
	fieldKeyC5 uint32 = 0x1F83D9AB
)

// Result carries the finished token and the session UUID's hex form, which
// the caller sets as a companion cookie.
type Result struct {
	Token string
	CUID  string
}

// Generator produces tokens from an injected entropy source and a fixed
// browser profile. The zero-config path is Generate below. A Generator is
// safe for concurrent use: every call draws a one-shot seed from rng and
// keeps all other state on its own stack.
type Generator struct {
	rng     io.Reader
	profile *Profile
}

func NewGenerator(rng io.Reader, profile *Profile) *Generator {
	if rng == nil {
		rng = cryptorand.Reader
	}
	if profile == nil {
		profile = DefaultProfile()
	}
	return &Generator{rng: rng, profile: profile}
}

// Generate builds a token with the default profile and the platform CSPRNG.
// userAgent must be the exact string the surrounding request will send in
// its User-Agent header; the verifier cross-checks the two.
func Generate(userAgent string) (*Result, error) {
	return NewGenerator(nil, nil).Generate(userAgent)
}

func (g *Generator) Generate(userAgent string) (*Result, error) {
	if len(userAgent) > 400 {
		userAgent = userAgent[:400]
	}

	var seed [32]byte
	if _, err := io.ReadFull(g.rng, seed[:]); err != nil {
		return nil, fmt.Errorf("castle: rng: %w", err)
	}
	src := rand.NewChaCha8(seed)
	rnd := rand.New(src)

	// The page "opened" a few seconds before the token is sent.
	sendMs := time.Now().UnixMilli()
	initMs := sendMs - int64(2000+rnd.IntN(4000))
	initTime := float64(initMs) / 1000

	device, err := buildDeviceSection(g.profile, initTime)
	if err != nil {
		return nil, err
	}
	browser, err := buildBrowserSection(g.profile, initTime, userAgent)
	if err != nil {
		return nil, err
	}
	timing, err := buildTimingSection(g.profile, initMs, sendMs)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, 512)
	payload = append(payload, device...)
	payload = append(payload, browser...)
	payload = append(payload, timing...)
	payload = append(payload, generateEventLog(rnd)...)
	payload = append(payload, buildBehavioralData(rnd)...)
	payload = append(payload, 0xFF)

	// Layer 1: keyed by the encrypted send timestamp, rotation nibble taken
	// from its own 4th character.
	sendHex := encodeTimestampEncrypted(sendMs, byte(rnd.IntN(16)))
	payload = deriveAndXor(sendHex, 4, sendHex[3], payload)

	// Layer 2: keyed by the session UUID, with the layer-1 timestamp bytes
	// prefixed so the verifier can peel both layers back.
	u, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return nil, fmt.Errorf("castle: uuid: %w", err)
	}
	uuidHex := hex.EncodeToString(u[:])
	tsRaw, _ := hex.DecodeString(sendHex)
	payload = deriveAndXor(uuidHex, 8, uuidHex[9], append(tsRaw, payload...))

	plain := append(buildHeader(initMs, byte(rnd.IntN(16)), u), payload...)
	enc := xxteaEncrypt(plain, payloadKey)

	out := make([]byte, 0, len(enc)+4)
	out = append(out, tokenVersion, byte(len(enc)-len(plain)))
	out = append(out, enc...)
	out = append(out, byte(len(out)*2))

	// Final single-byte mask; the key byte itself travels in front unmasked.
	mask := byte(rnd.IntN(256))
	masked := make([]byte, len(out)+1)
	masked[0] = mask
	for i, b := range out {
		masked[i+1] = b ^ mask
	}

	return &Result{
		Token: base64.RawURLEncoding.EncodeToString(masked),
		CUID:  uuidHex,
	}, nil
}

func buildHeader(initMs int64, k byte, u uuid.UUID) []byte {
	ts, _ := hex.DecodeString(encodeTimestampEncrypted(initMs, k))
	h := make([]byte, 0, len(ts)+2+len(publisherKey)+len(u))
	h = append(h, ts...)
	h = append(h, byte(sdkVersion>>8), byte(sdkVersion&0xFF))
	h = append(h, publisherKey...)
	return append(h, u[:]...)
}
