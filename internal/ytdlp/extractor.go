package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rrosajp/service.yt-dlp/internal/log"
)

// ErrExtraction wraps every failure of the extraction collaborator.
var ErrExtraction = errors.New("extraction failed")

// Extractor resolves a URL to raw video metadata. It is the service's sole
// view of the extraction engine; implementations own transport, timeouts and
// anti-bot plumbing.
type Extractor interface {
	// Extract returns decoded metadata, or (nil, nil) when the extractor
	// produced no result at all.
	Extract(ctx context.Context, rawURL string) (*Info, error)
	// ExtractRaw returns the sanitized extractor output verbatim.
	ExtractRaw(ctx context.Context, rawURL string) (json.RawMessage, error)
}

// CLI shells out to a yt-dlp binary and parses its single-JSON dump output.
type CLI struct {
	path string
	args []string
	log  zerolog.Logger
}

// NewCLI returns an extractor backed by the yt-dlp binary at path.
// Extra args are appended to every invocation.
func NewCLI(path string, args ...string) *CLI {
	if path == "" {
		path = "yt-dlp"
	}
	return &CLI{
		path: path,
		args: args,
		log:  log.WithComponent("ytdlp"),
	}
}

func (c *CLI) Extract(ctx context.Context, rawURL string) (*Info, error) {
	payload, err := c.ExtractRaw(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}
	var info Info
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, fmt.Errorf("%w: decode output: %v", ErrExtraction, err)
	}
	return &info, nil
}

func (c *CLI) ExtractRaw(ctx context.Context, rawURL string) (json.RawMessage, error) {
	target := unquote(rawURL)

	argv := make([]string, 0, len(c.args)+3)
	argv = append(argv, "--dump-single-json", "--no-download")
	argv = append(argv, c.args...)
	argv = append(argv, target)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug().Str("url", target).Msg("extracting")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrExtraction, err, lastLine(&stderr))
	}
	return json.RawMessage(bytes.TrimSpace(stdout.Bytes())), nil
}

// unquote undoes percent-encoding applied by callers that pass the target URL
// as a query parameter. Invalid escapes leave the input unchanged.
func unquote(rawURL string) string {
	if unescaped, err := url.QueryUnescape(rawURL); err == nil {
		return unescaped
	}
	return rawURL
}

func lastLine(buf *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
