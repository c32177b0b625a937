package streams

import (
	"testing"

	"github.com/rrosajp/service.yt-dlp/internal/ytdlp"
)

func TestClassifyVideoOnly(t *testing.T) {
	kind, codec := Classify(ytdlp.Format{
		Container:  "mp4_dash",
		VideoCodec: "avc1.640028",
		AudioCodec: "none",
	})
	if kind != KindVideo {
		t.Fatalf("kind = %v, want KindVideo", kind)
	}
	if codec != "avc1.640028" {
		t.Fatalf("codec = %q, want avc1.640028", codec)
	}
}

func TestClassifyAudioOnly(t *testing.T) {
	kind, codec := Classify(ytdlp.Format{
		Container:  "m4a_dash",
		VideoCodec: "none",
		AudioCodec: "mp4a.40.2",
	})
	if kind != KindAudio {
		t.Fatalf("kind = %v, want KindAudio", kind)
	}
	if codec != "mp4a.40.2" {
		t.Fatalf("codec = %q, want mp4a.40.2", codec)
	}
}

func TestClassifyDropsUnusableFormats(t *testing.T) {
	cases := []struct {
		name string
		fmt  ytdlp.Format
	}{
		{"non-segmented container", ytdlp.Format{Container: "mp4", VideoCodec: "avc1.640028", AudioCodec: "none"}},
		{"empty container", ytdlp.Format{VideoCodec: "avc1.640028", AudioCodec: "none"}},
		{"muxed", ytdlp.Format{Container: "mp4_dash", VideoCodec: "avc1.640028", AudioCodec: "mp4a.40.2"}},
		{"both none", ytdlp.Format{Container: "mp4_dash", VideoCodec: "none", AudioCodec: "none"}},
		{"both missing", ytdlp.Format{Container: "mp4_dash"}},
		{"video missing audio missing", ytdlp.Format{Container: "mp4_dash", VideoCodec: "avc1.640028"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if kind, _ := Classify(tc.fmt); kind != KindNone {
				t.Fatalf("kind = %v, want KindNone", kind)
			}
		})
	}
}

func TestExcludedMatchesPrefixes(t *testing.T) {
	prefixes := []string{"vp09", "vp9"}
	if !excluded("vp09.00.10.08", prefixes) {
		t.Fatal("vp09.00.10.08 should be excluded")
	}
	if !excluded("vp9", prefixes) {
		t.Fatal("vp9 should be excluded")
	}
	if excluded("avc1.640028", prefixes) {
		t.Fatal("avc1.640028 should not be excluded")
	}
	if excluded("avc1.640028", nil) {
		t.Fatal("nothing is excluded without prefixes")
	}
}
