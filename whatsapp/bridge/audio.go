package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// AudioConverter turns an audio file into an Opus/OGG voice note
type AudioConverter interface {
	// ToOpusOgg returns the path of a temporary .ogg file the caller removes
	ToOpusOgg(ctx context.Context, inputPath string) (string, error)
}

// FFmpeg converts audio by shelling out to the ffmpeg binary
type FFmpeg struct {
	Path string
}

func NewFFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Path: path}
}

func (f *FFmpeg) ToOpusOgg(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file: %w", err)
	}
	out, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	outputPath := out.Name()
	_ = out.Close()

	cmd := exec.CommandContext(ctx, f.Path,
		"-i", inputPath,
		"-c:a", "libopus",
		"-b:a", "32k",
		"-ar", "24000",
		"-application", "voip",
		"-vbr", "on",
		"-compression_level", "10",
		"-frame_duration", "60",
		"-y", outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(outputPath)
		return "", fmt.Errorf("running ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return outputPath, nil
}
