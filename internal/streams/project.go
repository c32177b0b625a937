package streams

import (
	"math"

	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

// Project maps an accepted raw format into a normalized stream. It returns
// false when the frame-rate policy rejects the format, or when the format is
// missing fields required for its kind; a skipped entry never aborts the
// surrounding composition.
func Project(f ytdlp.Format, kind Kind, codec string, pol policy.Policy) (Stream, bool) {
	if f.FormatID == "" || f.Extension == "" || f.URL == "" || f.InitRange == "" || f.IndexRange == "" {
		return Stream{}, false
	}

	var (
		video *VideoStream
		audio *AudioStream
		lang  *string
	)
	switch kind {
	case KindVideo:
		if f.VideoBitrate == nil || f.Width == nil || f.Height == nil || f.FrameRate == nil {
			return Stream{}, false
		}
		fps := *f.FrameRate
		if limit := pol.FrameRateCap; limit > 0 && fps > float64(limit) {
			return Stream{}, false
		}
		video = &VideoStream{
			AverageBitrate: int(math.Round(*f.VideoBitrate * 1000)),
			Width:          *f.Width,
			Height:         *f.Height,
			FrameRate:      pol.FrameRateHint.Apply(fps),
		}
	case KindAudio:
		if f.AudioBitrate == nil || f.SampleRate == nil || f.AudioChannels == nil {
			return Stream{}, false
		}
		audio = &AudioStream{
			AverageBitrate: int(math.Round(*f.AudioBitrate * 1000)),
			SamplingRate:   *f.SampleRate,
			Channels:       *f.AudioChannels,
		}
		lang = f.Language
	default:
		return Stream{}, false
	}

	contentType := ContentTypeVideo
	if audio != nil {
		contentType = ContentTypeAudio
	}
	return Stream{
		ContentType: contentType,
		MimeType:    string(contentType) + "/" + f.Extension,
		ID:          f.FormatID,
		Codecs:      codec,
		Lang:        lang,
		URL:         f.URL,
		InitRange:   f.InitRange,
		IndexRange:  f.IndexRange,
		Video:       video,
		Audio:       audio,
	}, true
}
