package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ferrovax/vidrelay/internal/domain"
)

// Fixed codec pair used for re-encodes.
const (
	videoCodec = "libx264"
	audioCodec = "aac"
)

// Processor handles video probing and re-encoding using ffmpeg.
type Processor struct {
	ffmpegPath  string
	ffprobePath string
}

// NewProcessor creates a new video processor. Empty paths fall back to a
// PATH lookup for ffmpeg and ffprobe.
func NewProcessor(ffmpegPath, ffprobePath string) (*Processor, error) {
	var err error

	if ffmpegPath == "" {
		ffmpegPath, err = exec.LookPath("ffmpeg")
		if err != nil {
			return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
		}
	}

	if ffprobePath == "" {
		ffprobePath, err = exec.LookPath("ffprobe")
		if err != nil {
			return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
		}
	}

	return &Processor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}, nil
}

// ClipInfo contains metadata about a video file.
type ClipInfo struct {
	Duration float64 // Duration in seconds
	FileSize int64
}

// Probe extracts duration and size from a video file using ffprobe.
func (p *Processor) Probe(ctx context.Context, videoPath string) (*ClipInfo, error) {
	stat, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("stat video: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		videoPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var parsed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &parsed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &ClipInfo{FileSize: stat.Size()}
	if parsed.Format.Duration != "" {
		if dur, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
			info.Duration = dur
		}
	}

	return info, nil
}

// TargetBitrateKbps estimates the video bitrate, in kilobits per second,
// that encodes a clip of the given duration into maxMB megabytes.
func TargetBitrateKbps(maxMB, durationSeconds float64) int {
	return int(maxMB * 8192 / durationSeconds)
}

// CompressedPath derives the output path for a re-encoded clip: the input
// basename prefixed with "compressed_", in the same directory.
func CompressedPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), "compressed_"+filepath.Base(inputPath))
}

// CompressToFit re-encodes videoPath so it fits within maxMB megabytes.
// A file already at or below the ceiling is returned unchanged with no new
// file created. Otherwise the full clip is re-encoded at a bitrate derived
// from its duration and written next to the input with a "compressed_"
// prefix. On any failure the original path is returned along with the
// error; the input file is never modified or deleted.
func (p *Processor) CompressToFit(ctx context.Context, videoPath string, maxMB float64) (string, error) {
	stat, err := os.Stat(videoPath)
	if err != nil {
		return videoPath, fmt.Errorf("stat video: %w", err)
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	if sizeMB <= maxMB {
		return videoPath, nil
	}

	info, err := p.Probe(ctx, videoPath)
	if err != nil {
		return videoPath, err
	}

	if info.Duration <= 0 {
		return videoPath, domain.ErrNoDuration
	}

	outputPath := CompressedPath(videoPath)
	bitrate := TargetBitrateKbps(maxMB, info.Duration)

	cmd := exec.CommandContext(ctx, p.ffmpegPath,
		"-i", videoPath,
		"-c:v", videoCodec,
		"-b:v", strconv.Itoa(bitrate)+"k",
		"-c:a", audioCodec,
		"-threads", "4",
		"-y",
		outputPath,
	)
	if err := cmd.Run(); err != nil {
		// A failed encode may leave a partial output behind.
		os.Remove(outputPath)
		return videoPath, fmt.Errorf("ffmpeg encode: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return videoPath, fmt.Errorf("encoded output missing: %w", err)
	}

	return outputPath, nil
}

// Version returns the first line of ffmpeg's version banner.
func (p *Processor) Version() (string, error) {
	output, err := exec.Command(p.ffmpegPath, "-version").Output()
	if err != nil {
		return "", err
	}
	for i, b := range output {
		if b == '\n' {
			return string(output[:i]), nil
		}
	}
	return "unknown", nil
}
