package playback

// ManifestType identifies how the descriptor's URL is packaged.
type ManifestType string

const (
	ManifestTypeHLS ManifestType = "hls"
	ManifestTypeMPD ManifestType = "mpd"
)

// dashMimeType is attached to composed manifests; pre-packaged HLS
// descriptors carry no MIME type.
const dashMimeType = "application/dash+xml"

// Video is the playable-item descriptor returned for one resolve request.
// It is built fresh per request and never cached.
type Video struct {
	ID           string       `json:"video_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ChannelID    string       `json:"channel_id"`
	Channel      string       `json:"channel"`
	Duration     float64      `json:"duration"`
	IsLive       bool         `json:"is_live"`
	URL          string       `json:"url"`
	Thumbnail    string       `json:"thumbnail"`
	LikeCount    int64        `json:"like_count"`
	ViewCount    int64        `json:"view_count"`
	Timestamp    int64        `json:"timestamp"`
	ManifestType ManifestType `json:"manifestType"`
	MimeType     *string      `json:"mimeType"`
}
