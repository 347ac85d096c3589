// Package fetcher wraps the yt-dlp command line tool: a metadata probe
// followed by a muxed mp4 download.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ferrovax/vidrelay/internal/domain"
)

// YTDLP invokes the yt-dlp binary to extract and download videos.
type YTDLP struct {
	binPath string
	logger  *slog.Logger
}

// New creates a yt-dlp backed fetcher. An empty binPath falls back to a
// PATH lookup; a missing binary is a construction error since nothing can
// be downloaded without it.
func New(binPath string, logger *slog.Logger) (*YTDLP, error) {
	var err error
	if binPath == "" {
		binPath, err = exec.LookPath("yt-dlp")
		if err != nil {
			return nil, fmt.Errorf("yt-dlp not found in PATH: %w", err)
		}
	}
	return &YTDLP{binPath: binPath, logger: logger}, nil
}

// Probe queries yt-dlp for metadata without downloading.
func (y *YTDLP) Probe(ctx context.Context, url string) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, y.binPath,
		"--dump-json",
		"--skip-download",
		"--quiet",
		"--no-warnings",
		url,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, domain.NewURLError(url, "probe", commandError(err, stderr.Bytes()))
	}

	meta, err := parseMetadata(output)
	if err != nil {
		return nil, domain.NewURLError(url, "probe", err)
	}
	return meta, nil
}

// Fetch probes the URL, then downloads the best available combined
// video+audio stream muxed to mp4 into dir. The artifact's filename is
// derived from the probed metadata.
func (y *YTDLP) Fetch(ctx context.Context, url, dir string) (domain.Artifact, error) {
	meta, err := y.Probe(ctx, url)
	if err != nil {
		return domain.Artifact{}, err
	}

	path := filepath.Join(dir, meta.Filename())

	y.logger.Debug("downloading video",
		"url", url,
		"uploader", meta.UploaderLabel(),
		"path", path,
	)

	cmd := exec.CommandContext(ctx, y.binPath,
		"-f", "bestvideo+bestaudio/best",
		"--merge-output-format", "mp4",
		"--quiet",
		"--no-warnings",
		"-o", path,
		url,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// yt-dlp can leave partial .part files next to the target.
		removePartials(path)
		return domain.Artifact{}, domain.NewURLError(url, "download", commandError(err, stderr.Bytes()))
	}

	if _, err := os.Stat(path); err != nil {
		return domain.Artifact{}, domain.NewURLError(url, "download", domain.ErrDownloadFailed)
	}

	return domain.Artifact{Path: path, Uploader: meta.UploaderLabel()}, nil
}

// commandError folds captured stderr into the exec error so failures are
// diagnosable from a single log line.
func commandError(err error, stderr []byte) error {
	msg := bytes.TrimSpace(stderr)
	if len(msg) == 0 {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}

func removePartials(path string) {
	matches, err := filepath.Glob(path + "*")
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}
