package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestHolderSnapshotIsStable(t *testing.T) {
	h := NewHolder(Default(), "")
	snap := h.Snapshot()
	snap.FrameRateCap = 30
	if h.Snapshot().FrameRateCap != 0 {
		t.Fatal("mutating a snapshot must not affect the holder")
	}
}

func TestHolderReloadSwapsPolicy(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "fps_limit: 0\nfps_hint: int\n")
	h := NewHolder(Default(), path)

	if err := os.WriteFile(path, []byte("captions: true\nfps_limit: 30\nfps_hint: none\nexclude: [opus]\n"), 0o644); err != nil {
		t.Fatalf("rewrite settings: %v", err)
	}
	if err := h.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	got := h.Snapshot()
	if !got.Captions || got.FrameRateCap != 30 || got.FrameRateHint != HintNone {
		t.Fatalf("unexpected policy after reload: %+v", got)
	}
}

func TestHolderReloadKeepsOldPolicyOnError(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "fps_hint: int\n")
	initial := Policy{Captions: true, FrameRateHint: HintFloat}
	h := NewHolder(initial, path)

	if err := os.WriteFile(path, []byte("fps_hint: bogus\n"), 0o644); err != nil {
		t.Fatalf("rewrite settings: %v", err)
	}
	if err := h.Reload(context.Background()); err == nil {
		t.Fatal("expected reload to fail")
	}
	if got := h.Snapshot(); got.FrameRateHint != HintFloat || !got.Captions {
		t.Fatalf("policy changed despite failed reload: %+v", got)
	}
}
