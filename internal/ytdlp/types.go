package ytdlp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Info is the top-level extraction result for a single video. Field names
// follow the yt-dlp JSON output; only the keys the service consumes are
// decoded, everything else stays in the raw payload returned by ExtractRaw.
type Info struct {
	ID                string       `json:"id"`
	Title             string       `json:"fulltitle"`
	Description       string       `json:"description"`
	ChannelID         string       `json:"channel_id"`
	Channel           string       `json:"channel"`
	Duration          *float64     `json:"duration"`
	IsLive            bool         `json:"is_live"`
	ManifestURL       string       `json:"manifest_url"`
	Thumbnail         string       `json:"thumbnail"`
	LikeCount         int64        `json:"like_count"`
	ViewCount         int64        `json:"view_count"`
	Timestamp         int64        `json:"timestamp"`
	Formats           []Format     `json:"formats"`
	Subtitles         SubtitleList `json:"subtitles"`
	AutomaticCaptions SubtitleList `json:"automatic_captions"`
}

// DurationSeconds returns the reported duration, or -1 when unknown.
func (i *Info) DurationSeconds() float64 {
	if i == nil || i.Duration == nil {
		return -1
	}
	return *i.Duration
}

// Format is one elementary stream candidate as reported by the extractor.
// Numeric fields that yt-dlp omits for some formats are pointers so that
// absence stays distinguishable from zero.
type Format struct {
	FormatID      string   `json:"format_id"`
	Container     string   `json:"container"`
	Extension     string   `json:"ext"`
	VideoCodec    string   `json:"vcodec"`
	AudioCodec    string   `json:"acodec"`
	VideoBitrate  *float64 `json:"vbr"`
	AudioBitrate  *float64 `json:"abr"`
	Width         *int     `json:"width"`
	Height        *int     `json:"height"`
	FrameRate     *float64 `json:"fps"`
	SampleRate    *int     `json:"asr"`
	AudioChannels *int     `json:"audio_channels"`
	Language      *string  `json:"language"`
	URL           string   `json:"url"`
	InitRange     string   `json:"initRange"`
	IndexRange    string   `json:"indexRange"`
}

// SubtitleVariant is one downloadable rendition of a subtitle track.
type SubtitleVariant struct {
	Name string `json:"name"`
	Ext  string `json:"ext"`
	URL  string `json:"url"`
}

// SubtitleTrack groups the variants available for one language.
type SubtitleTrack struct {
	Lang     string
	Variants []SubtitleVariant
}

// SubtitleList preserves the language order of the source JSON object.
// yt-dlp emits subtitles as an object keyed by language code; decoding into a
// Go map would lose the order the manifest builder is expected to keep.
type SubtitleList []SubtitleTrack

func (l *SubtitleList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("subtitles: expected object, got %v", tok)
	}
	var out SubtitleList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		lang, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("subtitles: unexpected key token %v", keyTok)
		}
		var variants []SubtitleVariant
		if err := dec.Decode(&variants); err != nil {
			return err
		}
		out = append(out, SubtitleTrack{Lang: lang, Variants: variants})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

func (l SubtitleList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, track := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(track.Lang)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		variants, err := json.Marshal(track.Variants)
		if err != nil {
			return nil, err
		}
		buf.Write(variants)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
