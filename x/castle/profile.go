package castle

import "time"

// Profile is the simulated browser a token claims to come from. It is read
// once per generation and never mutated.
type Profile struct {
	Platform            string
	Vendor              string
	Locale              string
	Languages           []string
	Timezone            string // IANA zone name
	ScreenWidth         int
	ScreenHeight        int
	AvailWidth          int
	AvailHeight         int
	GPURenderer         string
	DeviceMemory        float64 // GB
	HardwareConcurrency int
	ColorDepth          int
	PixelRatio          float64
	MaxTouchPoints      int
}

// DefaultProfile is a common Chrome-on-Windows desktop. Dimensions and GPU
// string were captured from one real session; changing them independently of
// the user agent risks a cross-validation mismatch on the verifier side.
func DefaultProfile() *Profile {
	return &Profile{
		Platform:            "Win32",
		Vendor:              "Google Inc.",
		Locale:              "en-US",
		Languages:           []string{"en-US", "en"},
		Timezone:            "America/New_York",
		ScreenWidth:         1920,
		ScreenHeight:        1080,
		AvailWidth:          1920,
		AvailHeight:         1032,
		GPURenderer:         "ANGLE (NVIDIA, NVIDIA GeForce GTX 1660 SUPER Direct3D11 vs_5_0 ps_5_0, D3D11)",
		DeviceMemory:        8,
		HardwareConcurrency: 8,
		ColorDepth:          24,
		PixelRatio:          1.0,
		MaxTouchPoints:      0,
	}
}

var platformCodes = map[string]byte{
	"Win32":        0,
	"MacIntel":     1,
	"Linux x86_64": 2,
	"Linux armv81": 3,
	"iPhone":       4,
	"Android":      5,
}

var vendorCodes = map[string]byte{
	"Google Inc.":          0,
	"Apple Computer, Inc.": 1,
	"":                     2,
}

func platformCode(p string) byte {
	if c, ok := platformCodes[p]; ok {
		return c
	}
	return 0xFF
}

func vendorCode(v string) byte {
	if c, ok := vendorCodes[v]; ok {
		return c
	}
	return 0xFF
}

// timezoneUnits reports the profile zone's current UTC offset and its
// January/July DST spread, both in 15-minute units. The offset carries a
// +48-unit bias so westward zones stay non-negative on the wire.
//
// Historical SDK snapshots shipped a static per-zone table instead; two of
// them disagree on Asia/Shanghai (224 vs 246), so the computed path is
// authoritative and the table below is only a fallback for hosts without
// tzdata.
func timezoneUnits(zone string, now time.Time) (offsetUnits, dstUnits int) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		if u, ok := fallbackZoneUnits[zone]; ok {
			return u, 0
		}
		return 48, 0 // UTC
	}
	_, cur := now.In(loc).Zone()
	_, jan := time.Date(now.Year(), time.January, 1, 12, 0, 0, 0, loc).Zone()
	_, jul := time.Date(now.Year(), time.July, 1, 12, 0, 0, 0, loc).Zone()
	dst := jan - jul
	if dst < 0 {
		dst = -dst
	}
	return 48 + cur/900, dst / 900
}

var fallbackZoneUnits = map[string]int{
	"UTC":              48,
	"America/New_York": 28,
	"America/Chicago":  24,
	"Europe/London":    48,
	"Europe/Berlin":    52,
	"Asia/Tokyo":       84,
	"Asia/Shanghai":    80,
	"Australia/Sydney": 88,
}
