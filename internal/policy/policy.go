package policy

import (
	"fmt"
	"sort"
	"strings"
)

// FrameRateHint selects how a raw frame rate is translated for the player.
type FrameRateHint string

const (
	// HintInt passes the raw rate through unchanged.
	HintInt FrameRateHint = "int"
	// HintFloat remaps the common integer rates to their NTSC equivalents.
	HintFloat FrameRateHint = "float"
	// HintNone suppresses the frame rate entirely.
	HintNone FrameRateHint = "none"
)

// Apply translates a raw frame rate according to the hint.
func (h FrameRateHint) Apply(fps float64) float64 {
	switch h {
	case HintFloat:
		switch fps {
		case 24:
			return 23.976
		case 30:
			return 29.97
		case 60:
			return 59.94
		}
		return fps
	case HintNone:
		return 0
	}
	return fps
}

func (h FrameRateHint) valid() bool {
	switch h {
	case HintInt, HintFloat, HintNone:
		return true
	}
	return false
}

// Family is a user-facing codec grouping that expands to one or more raw
// codec-tag prefixes for exclusion matching.
type Family struct {
	Label    string
	Prefixes []string
}

// Families maps family keys accepted in settings and per-call overrides to
// their expansion.
var Families = map[string]Family{
	"avc1": {Label: "H.264 (AVC)", Prefixes: []string{"avc1"}},
	"mp4a": {Label: "AAC", Prefixes: []string{"mp4a"}},
	"vp09": {Label: "VP9", Prefixes: []string{"vp09", "vp9"}},
	"opus": {Label: "Opus", Prefixes: []string{"opus"}},
	"av01": {Label: "AV1", Prefixes: []string{"av01"}},
}

// frame-rate caps accepted in settings and per-call overrides
var allowedCaps = map[int]struct{}{0: {}, 30: {}}

// Policy is one immutable snapshot of the filtering preferences. Requests
// capture a snapshot at entry and never observe a concurrent reload.
type Policy struct {
	// Captions substitutes automatic captions when no manual subtitles exist.
	Captions bool
	// FrameRateCap drops video formats above this rate; 0 means unlimited.
	FrameRateCap int
	// FrameRateHint selects the display-rate translation.
	FrameRateHint FrameRateHint
	// Exclude lists codec family keys whose formats are rejected.
	Exclude []string
}

// Default is the minimal configuration: captions off, no cap, no exclusions,
// raw frame rates passed through.
func Default() Policy {
	return Policy{FrameRateHint: HintInt}
}

// ExcludedPrefixes expands the excluded families into raw codec-tag prefixes.
func (p Policy) ExcludedPrefixes() []string {
	if len(p.Exclude) == 0 {
		return nil
	}
	prefixes := make([]string, 0, len(p.Exclude))
	for _, key := range p.Exclude {
		if family, ok := Families[key]; ok {
			prefixes = append(prefixes, family.Prefixes...)
		}
	}
	return prefixes
}

// ExcludedLabels returns the display labels of the excluded families.
func (p Policy) ExcludedLabels() string {
	if len(p.Exclude) == 0 {
		return ""
	}
	labels := make([]string, 0, len(p.Exclude))
	for _, key := range p.Exclude {
		if family, ok := Families[key]; ok {
			labels = append(labels, family.Label)
		}
	}
	return strings.Join(labels, ", ")
}

// Validate rejects values outside the settings schema.
func (p Policy) Validate() error {
	if _, ok := allowedCaps[p.FrameRateCap]; !ok {
		return fmt.Errorf("policy: unsupported fps limit %d (want one of %v)", p.FrameRateCap, capKeys())
	}
	if !p.FrameRateHint.valid() {
		return fmt.Errorf("policy: unknown fps hint %q", p.FrameRateHint)
	}
	for _, key := range p.Exclude {
		if _, ok := Families[key]; !ok {
			return fmt.Errorf("policy: unknown codec family %q", key)
		}
	}
	return nil
}

func capKeys() []int {
	keys := make([]int, 0, len(allowedCaps))
	for k := range allowedCaps {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
