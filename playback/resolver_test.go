package playback

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rrosajp/service.yt-dlp/internal/policy"
	"github.com/rrosajp/service.yt-dlp/internal/streams"
	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

type fakeExtractor struct {
	info *ytdlp.Info
	raw  json.RawMessage
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (*ytdlp.Info, error) {
	return f.info, f.err
}

func (f *fakeExtractor) ExtractRaw(context.Context, string) (json.RawMessage, error) {
	return f.raw, f.err
}

type fakeBuilder struct {
	url      string
	err      error
	called   bool
	duration float64
	streams  []streams.Stream
}

func (b *fakeBuilder) Build(_ context.Context, duration float64, list []streams.Stream) (string, error) {
	b.called = true
	b.duration = duration
	b.streams = list
	return b.url, b.err
}

func ptr[T any](v T) *T { return &v }

func qualifyingInfo() *ytdlp.Info {
	return &ytdlp.Info{
		ID:        "jNQXAC9IVRw",
		Title:     "Me at the zoo",
		ChannelID: "UC4QobU6STFB0P71PMvOGN5A",
		Channel:   "jawed",
		Duration:  ptr(19.0),
		Thumbnail: "https://example.com/thumb.jpg",
		Formats: []ytdlp.Format{
			{
				FormatID: "248", Container: "webm_dash", Extension: "webm",
				VideoCodec: "vp09.00.10.08", AudioCodec: "none",
				VideoBitrate: ptr(5000.0), Width: ptr(1920), Height: ptr(1080), FrameRate: ptr(24.0),
				URL: "https://example.com/v", InitRange: "0-219", IndexRange: "220-1577",
			},
			{
				FormatID: "251", Container: "webm_dash", Extension: "webm",
				VideoCodec: "none", AudioCodec: "opus",
				AudioBitrate: ptr(128.0), SampleRate: ptr(48000), AudioChannels: ptr(2),
				URL: "https://example.com/a", InitRange: "0-265", IndexRange: "266-1001",
			},
		},
	}
}

func newTestResolver(extractor ytdlp.Extractor, builder streams.Builder) *Resolver {
	return NewResolver(extractor, builder, policy.NewHolder(policy.Default(), ""))
}

func TestVideoComposesManifest(t *testing.T) {
	builder := &fakeBuilder{url: "https://manifests.local/abc.mpd"}
	r := newTestResolver(&fakeExtractor{info: qualifyingInfo()}, builder)

	video, err := r.Video(context.Background(), "https://youtu.be/jNQXAC9IVRw", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video == nil {
		t.Fatal("expected a descriptor")
	}
	if video.ManifestType != ManifestTypeMPD {
		t.Fatalf("manifestType = %q, want mpd", video.ManifestType)
	}
	if video.MimeType == nil || *video.MimeType != "application/dash+xml" {
		t.Fatalf("mimeType = %v, want application/dash+xml", video.MimeType)
	}
	if video.URL != builder.url {
		t.Fatalf("url = %q, want %q", video.URL, builder.url)
	}
	if builder.duration != 19 {
		t.Fatalf("builder duration = %v, want 19", builder.duration)
	}
	if len(builder.streams) != 2 {
		t.Fatalf("builder got %d streams, want 2", len(builder.streams))
	}
}

func TestVideoPrePackagedShortCircuits(t *testing.T) {
	info := qualifyingInfo()
	info.IsLive = true
	info.ManifestURL = "https://example.com/live.m3u8"
	builder := &fakeBuilder{}
	r := newTestResolver(&fakeExtractor{info: info}, builder)

	video, err := r.Video(context.Background(), "https://youtu.be/live", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ManifestType != ManifestTypeHLS {
		t.Fatalf("manifestType = %q, want hls", video.ManifestType)
	}
	if video.MimeType != nil {
		t.Fatalf("mimeType = %v, want nil", video.MimeType)
	}
	if video.URL != "https://example.com/live.m3u8" {
		t.Fatalf("url = %q, want the direct manifest url", video.URL)
	}
	if builder.called {
		t.Fatal("composer must not run for pre-packaged delivery")
	}
}

func TestVideoEmptyExtractionResult(t *testing.T) {
	r := newTestResolver(&fakeExtractor{}, &fakeBuilder{})
	video, err := r.Video(context.Background(), "https://youtu.be/none", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video != nil {
		t.Fatalf("video = %+v, want nil", video)
	}
}

func TestVideoExtractionFailurePropagates(t *testing.T) {
	wantErr := ytdlp.ErrExtraction
	r := newTestResolver(&fakeExtractor{err: wantErr}, &fakeBuilder{})
	if _, err := r.Video(context.Background(), "https://youtu.be/x", Options{}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestVideoBuilderFailurePropagates(t *testing.T) {
	wantErr := errors.New("builder down")
	r := newTestResolver(&fakeExtractor{info: qualifyingInfo()}, &fakeBuilder{err: wantErr})
	if _, err := r.Video(context.Background(), "https://youtu.be/x", Options{}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestVideoNoSurvivingStreams(t *testing.T) {
	info := qualifyingInfo()
	info.Formats = []ytdlp.Format{{Container: "mp4", VideoCodec: "avc1", AudioCodec: "mp4a"}}
	builder := &fakeBuilder{}
	r := newTestResolver(&fakeExtractor{info: info}, builder)

	video, err := r.Video(context.Background(), "https://youtu.be/x", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.URL != "" {
		t.Fatalf("url = %q, want empty", video.URL)
	}
	if video.ManifestType != ManifestTypeMPD {
		t.Fatalf("manifestType = %q, want mpd", video.ManifestType)
	}
	if builder.called {
		t.Fatal("builder must not be called without media streams")
	}
}

func TestVideoCaptionSubstitution(t *testing.T) {
	auto := ytdlp.SubtitleList{
		{Lang: "en", Variants: []ytdlp.SubtitleVariant{{Name: "English (auto)", Ext: "vtt", URL: "https://example.com/auto"}}},
	}
	manual := ytdlp.SubtitleList{
		{Lang: "de", Variants: []ytdlp.SubtitleVariant{{Name: "German", Ext: "vtt", URL: "https://example.com/de"}}},
	}

	t.Run("automatic captions substituted when no manual tracks", func(t *testing.T) {
		info := qualifyingInfo()
		info.AutomaticCaptions = auto
		builder := &fakeBuilder{url: "https://manifests.local/abc.mpd"}
		r := newTestResolver(&fakeExtractor{info: info}, builder)

		if _, err := r.Video(context.Background(), "u", Options{Captions: ptr(true)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last := builder.streams[len(builder.streams)-1]
		if last.ID != "English (auto)" {
			t.Fatalf("expected automatic caption track, got %+v", last)
		}
	})

	t.Run("manual tracks win, never merged", func(t *testing.T) {
		info := qualifyingInfo()
		info.Subtitles = manual
		info.AutomaticCaptions = auto
		builder := &fakeBuilder{url: "https://manifests.local/abc.mpd"}
		r := newTestResolver(&fakeExtractor{info: info}, builder)

		if _, err := r.Video(context.Background(), "u", Options{Captions: ptr(true)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(builder.streams) != 3 {
			t.Fatalf("got %d streams, want 3", len(builder.streams))
		}
		if builder.streams[2].ID != "German" {
			t.Fatalf("expected manual track only, got %+v", builder.streams[2])
		}
	})

	t.Run("captions off leaves automatic tracks unused", func(t *testing.T) {
		info := qualifyingInfo()
		info.AutomaticCaptions = auto
		builder := &fakeBuilder{url: "https://manifests.local/abc.mpd"}
		r := newTestResolver(&fakeExtractor{info: info}, builder)

		if _, err := r.Video(context.Background(), "u", Options{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(builder.streams) != 2 {
			t.Fatalf("got %d streams, want media only", len(builder.streams))
		}
	})
}

func TestVideoPerCallOverrides(t *testing.T) {
	holder := policy.NewHolder(policy.Policy{FrameRateHint: policy.HintInt, Exclude: []string{"opus"}}, "")
	builder := &fakeBuilder{url: "https://manifests.local/abc.mpd"}
	r := NewResolver(&fakeExtractor{info: qualifyingInfo()}, builder, holder)

	// Override replaces the process-wide exclusion list entirely.
	opts := Options{Exclude: ptr([]string{"vp09"})}
	if _, err := r.Video(context.Background(), "u", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(builder.streams) != 1 || builder.streams[0].ContentType != "audio" {
		t.Fatalf("override should exclude video only, got %+v", builder.streams)
	}

	// An explicit empty list disables exclusion for the call.
	builder.streams = nil
	opts = Options{Exclude: ptr([]string{})}
	if _, err := r.Video(context.Background(), "u", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(builder.streams) != 2 {
		t.Fatalf("empty override should disable exclusion, got %+v", builder.streams)
	}
}

func TestExtractPassthrough(t *testing.T) {
	raw := json.RawMessage(`{"id": "x"}`)
	r := newTestResolver(&fakeExtractor{raw: raw}, &fakeBuilder{})
	got, err := r.Extract(context.Background(), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("payload = %s, want %s", got, raw)
	}
}
