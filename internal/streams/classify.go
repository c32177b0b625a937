package streams

import (
	"strings"

	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

// Kind is the classification of one raw format.
type Kind int

const (
	// KindNone marks formats unusable for segmented playback.
	KindNone Kind = iota
	// KindVideo marks segment-addressable video-only formats.
	KindVideo
	// KindAudio marks segment-addressable audio-only formats.
	KindAudio
)

const (
	// noCodec is the extractor's sentinel for an absent elementary stream.
	noCodec = "none"
	// dashContainerSuffix marks segment-addressable delivery.
	dashContainerSuffix = "_dash"
)

// Classify inspects one raw format and reports whether it is a video-only or
// audio-only segment-addressable stream, together with the codec tag that
// classified it. Muxed formats, codec-less formats and non-segmented
// containers yield KindNone and are dropped silently.
func Classify(f ytdlp.Format) (Kind, string) {
	if !strings.HasSuffix(f.Container, dashContainerSuffix) {
		return KindNone, ""
	}
	switch {
	case f.VideoCodec != "" && f.VideoCodec != noCodec && f.AudioCodec == noCodec:
		return KindVideo, f.VideoCodec
	case f.AudioCodec != "" && f.AudioCodec != noCodec && f.VideoCodec == noCodec:
		return KindAudio, f.AudioCodec
	}
	return KindNone, ""
}

// excluded reports whether the classifying codec tag matches any expanded
// exclusion prefix.
func excluded(codec string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(codec, prefix) {
			return true
		}
	}
	return false
}
