// Package whispercpp runs a local whisper.cpp build as the speech recognizer.
package whispercpp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"voice-to-docs/internal/application"
)

const (
	DefaultBinary = "whisper-cli"
	DefaultModel  = "models/ggml-base.en.bin"
)

// ErrSampleRateUnsupported is returned when the whisper.cpp build only
// accepts 16 kHz input. Builds from v1.7.4 on resample on load.
var ErrSampleRateUnsupported = errors.New("whisper.cpp build cannot resample 44.1 kHz recordings: use whisper.cpp v1.7.4 or later")

type CLI struct {
	binary  string
	model   string
	threads int
	logger  *slog.Logger
}

func NewCLI(binary, model string, threads int, logger *slog.Logger) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	if model == "" {
		model = DefaultModel
	}
	return &CLI{
		binary:  binary,
		model:   model,
		threads: threads,
		logger:  logger,
	}
}

// CheckModel verifies the model file exists so that a missing download is
// reported at startup rather than on the first recording.
func (c *CLI) CheckModel() error {
	if _, err := os.Stat(c.model); err != nil {
		return fmt.Errorf("loading whisper model: %w", err)
	}
	return nil
}

func (c *CLI) Transcribe(ctx context.Context, audioPath string, opts application.RecognizeOptions) (string, error) {
	args := c.args(audioPath, opts)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running whisper", "binary", c.binary, "args", args)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		detail := lastLine(stderr.String())
		if strings.Contains(detail, "16 kHz") {
			return "", fmt.Errorf("running %s: %w: %s", c.binary, ErrSampleRateUnsupported, detail)
		}
		return "", fmt.Errorf("running %s: %w: %s", c.binary, err, detail)
	}

	if opts.Verbose {
		c.logger.Debug("whisper output", "stderr", stderr.String())
	}

	return joinSegments(stdout.String()), nil
}

func (c *CLI) args(audioPath string, opts application.RecognizeOptions) []string {
	args := []string{"-m", c.model, "-f", audioPath, "--no-timestamps"}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	if c.threads > 0 {
		args = append(args, "-t", strconv.Itoa(c.threads))
	}
	// whisper.cpp only uses half precision on the GPU path.
	if !opts.FP16 {
		args = append(args, "--no-gpu")
	}
	if !opts.Verbose {
		args = append(args, "--no-prints")
	}
	return args
}

// joinSegments flattens whisper.cpp's one-segment-per-line output.
func joinSegments(out string) string {
	var parts []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
