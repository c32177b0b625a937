package streams

import (
	"context"

	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

// Builder turns a duration and an ordered stream list into a manifest URL.
// It is the service's view of the external manifest builder.
type Builder interface {
	Build(ctx context.Context, duration float64, streams []Stream) (string, error)
}

// Composer assembles the normalized stream list for one request and delegates
// manifest construction.
type Composer struct {
	builder Builder
}

func NewComposer(builder Builder) *Composer {
	return &Composer{builder: builder}
}

// Compose classifies and projects every raw format in source order, appends
// the subtitle streams and hands the list to the manifest builder. It returns
// an empty URL without calling the builder when no media stream survives the
// policy; subtitles alone never produce a manifest. Builder failures
// propagate unchanged.
func (c *Composer) Compose(ctx context.Context, duration float64, formats []ytdlp.Format, subs ytdlp.SubtitleList, pol policy.Policy) (string, error) {
	prefixes := pol.ExcludedPrefixes()

	var list []Stream
	for _, f := range formats {
		kind, codec := Classify(f)
		if kind == KindNone || excluded(codec, prefixes) {
			continue
		}
		if s, ok := Project(f, kind, codec, pol); ok {
			list = append(list, s)
		}
	}
	if len(list) == 0 {
		return "", nil
	}

	list = append(list, ProjectSubtitles(subs)...)
	return c.builder.Build(ctx, duration, list)
}
