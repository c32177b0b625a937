package streams

import "github.com/rrosajp/service.yt-dlp/internal/ytdlp"

// supportedSubtitleFormats lists the caption formats the player understands.
var supportedSubtitleFormats = map[string]struct{}{
	"vtt": {},
}

// ProjectSubtitles maps raw subtitle tracks to text streams, keeping the
// language and variant order exactly as received. Variants without a name or
// in an unsupported format are omitted.
func ProjectSubtitles(subs ytdlp.SubtitleList) []Stream {
	var out []Stream
	for _, track := range subs {
		for _, variant := range track.Variants {
			if variant.Name == "" {
				continue
			}
			if _, ok := supportedSubtitleFormats[variant.Ext]; !ok {
				continue
			}
			lang := track.Lang
			out = append(out, Stream{
				ContentType: ContentTypeText,
				MimeType:    "text/" + variant.Ext,
				ID:          variant.Name,
				Lang:        &lang,
				URL:         variant.URL,
			})
		}
	}
	return out
}
