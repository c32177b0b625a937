package playback

import "github.com/rrosajp/service.yt-dlp/internal/policy"

// Options carries per-call policy overrides. Nil fields fall back to the
// process-wide settings snapshot, field by field. An explicit empty Exclude
// list disables exclusion for the call.
type Options struct {
	Captions      *bool
	Exclude       *[]string
	FrameRateCap  *int
	FrameRateHint *policy.FrameRateHint
}

// apply merges the overrides onto a policy snapshot.
func (o Options) apply(base policy.Policy) policy.Policy {
	if o.Captions != nil {
		base.Captions = *o.Captions
	}
	if o.Exclude != nil {
		base.Exclude = *o.Exclude
	}
	if o.FrameRateCap != nil {
		base.FrameRateCap = *o.FrameRateCap
	}
	if o.FrameRateHint != nil {
		base.FrameRateHint = *o.FrameRateHint
	}
	return base
}

// Validate rejects override values outside the settings schema.
func (o Options) Validate() error {
	probe := policy.Default()
	return o.apply(probe).Validate()
}
