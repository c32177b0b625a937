package streams

import "encoding/json"

// ContentType is the kind of a normalized stream.
type ContentType string

const (
	ContentTypeVideo ContentType = "video"
	ContentTypeAudio ContentType = "audio"
	ContentTypeText  ContentType = "text"
)

// VideoStream holds the video-specific fields of a normalized stream.
type VideoStream struct {
	AverageBitrate int
	Width          int
	Height         int
	FrameRate      float64
}

// AudioStream holds the audio-specific fields of a normalized stream.
type AudioStream struct {
	AverageBitrate int
	SamplingRate   int
	Channels       int
}

// Stream is one normalized entry of the manifest stream list. Exactly one of
// Video and Audio is set for media streams; both are nil for text streams.
type Stream struct {
	ContentType ContentType
	MimeType    string
	ID          string
	Codecs      string
	Lang        *string
	URL         string
	InitRange   string
	IndexRange  string
	Video       *VideoStream
	Audio       *AudioStream
}

// streamWire is the flat shape the manifest builder consumes.
type streamWire struct {
	ContentType       ContentType `json:"contentType"`
	MimeType          string      `json:"mimeType"`
	ID                string      `json:"id"`
	Codecs            string      `json:"codecs,omitempty"`
	Lang              *string     `json:"lang"`
	AverageBitrate    *int        `json:"averageBitrate,omitempty"`
	Width             *int        `json:"width,omitempty"`
	Height            *int        `json:"height,omitempty"`
	FrameRate         *float64    `json:"frameRate,omitempty"`
	AudioSamplingRate *int        `json:"audioSamplingRate,omitempty"`
	AudioChannels     *int        `json:"audioChannels,omitempty"`
	URL               string      `json:"url"`
	IndexRange        string      `json:"indexRange,omitempty"`
	InitRange         string      `json:"initRange,omitempty"`
}

func (s Stream) MarshalJSON() ([]byte, error) {
	wire := streamWire{
		ContentType: s.ContentType,
		MimeType:    s.MimeType,
		ID:          s.ID,
		Codecs:      s.Codecs,
		Lang:        s.Lang,
		URL:         s.URL,
		IndexRange:  s.IndexRange,
		InitRange:   s.InitRange,
	}
	if s.Video != nil {
		wire.AverageBitrate = &s.Video.AverageBitrate
		wire.Width = &s.Video.Width
		wire.Height = &s.Video.Height
		wire.FrameRate = &s.Video.FrameRate
	}
	if s.Audio != nil {
		wire.AverageBitrate = &s.Audio.AverageBitrate
		wire.AudioSamplingRate = &s.Audio.SamplingRate
		wire.AudioChannels = &s.Audio.Channels
	}
	return json.Marshal(wire)
}
