package playback

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/rrosajp/service.yt-dlp/internal/log"
	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/streams"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

// Resolver is the playback resolution core. It extracts raw metadata, decides
// between pre-packaged and composed delivery, and drives manifest composition.
type Resolver struct {
	extractor ytdlp.Extractor
	composer  *streams.Composer
	policies  *policy.Holder
	log       zerolog.Logger
}

// NewResolver wires the resolver to its collaborators.
func NewResolver(extractor ytdlp.Extractor, builder streams.Builder, policies *policy.Holder) *Resolver {
	return &Resolver{
		extractor: extractor,
		composer:  streams.NewComposer(builder),
		policies:  policies,
		log:       log.WithComponent("playback"),
	}
}

// Video resolves a URL to a playable descriptor. It returns (nil, nil) when
// the extractor found nothing playable; collaborator failures propagate
// unchanged.
func (r *Resolver) Video(ctx context.Context, rawURL string, opts Options) (*Video, error) {
	pol := opts.apply(r.policies.Snapshot())

	info, err := r.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if info == nil {
		r.log.Info().Str("url", rawURL).Msg("empty extraction result")
		return nil, nil
	}

	subtitles := info.Subtitles
	if len(subtitles) == 0 && pol.Captions {
		subtitles = info.AutomaticCaptions
	}

	video := &Video{
		ID:          info.ID,
		Title:       info.Title,
		Description: info.Description,
		ChannelID:   info.ChannelID,
		Channel:     info.Channel,
		Duration:    info.DurationSeconds(),
		IsLive:      info.IsLive,
		URL:         info.ManifestURL,
		Thumbnail:   info.Thumbnail,
		LikeCount:   info.LikeCount,
		ViewCount:   info.ViewCount,
		Timestamp:   info.Timestamp,
	}

	// Pre-packaged delivery short-circuits composition.
	if video.URL != "" {
		video.ManifestType = ManifestTypeHLS
		video.MimeType = nil
		return video, nil
	}

	manifestURL, err := r.composer.Compose(ctx, video.Duration, info.Formats, subtitles, pol)
	if err != nil {
		return nil, err
	}
	video.URL = manifestURL
	video.ManifestType = ManifestTypeMPD
	mime := dashMimeType
	video.MimeType = &mime
	return video, nil
}

// Extract is the diagnostic pass-through to the extraction collaborator.
func (r *Resolver) Extract(ctx context.Context, rawURL string) (json.RawMessage, error) {
	return r.extractor.ExtractRaw(ctx, rawURL)
}
