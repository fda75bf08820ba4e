package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voice-to-docs/internal/console"
	"voice-to-docs/internal/domain"
)

func newTestConsole(out *bytes.Buffer) *console.Console {
	return console.New(strings.NewReader(""), out)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GENERATION_PROVIDER", "VOICE_TO_DOCS_MODE", "WHISPER_BACKEND", "WHISPER_THREADS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_MissingCredential(t *testing.T) {
	clearEnv(t)

	out, err := execute(t, "--env-file", filepath.Join(t.TempDir(), "none.env"))

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigError", err)
	}
	if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("error should name the credential: %v", err)
	}
	if !strings.Contains(out, "ANTHROPIC_API_KEY=your-key-here") {
		t.Errorf("output should include the .env hint: %q", out)
	}
}

func TestRun_UnknownMode(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "--env-file", "", "--api-key", "k", "--mode", "waterfall")

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigError", err)
	}
}

func TestRun_RejectsArguments(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestReportError_DeviceHint(t *testing.T) {
	var out bytes.Buffer
	reportError(newTestConsole(&out), &domain.ConfigError{Msg: "invalid audio device 7", Err: errors.New("device index 7 out of range")})

	got := out.String()
	if !strings.Contains(got, "invalid audio device 7") {
		t.Errorf("output missing error: %q", got)
	}
	if !strings.Contains(got, "--list-devices") {
		t.Errorf("output missing hint: %q", got)
	}
}

func TestReportError_ModeNamedLikeCredential(t *testing.T) {
	var out bytes.Buffer
	reportError(newTestConsole(&out), &domain.ConfigError{Msg: `unknown mode "api_key" (supported: normal, agile-pm)`})

	got := out.String()
	if !strings.Contains(got, `unknown mode "api_key"`) {
		t.Errorf("output missing error: %q", got)
	}
	if strings.Contains(got, "your-key-here") {
		t.Errorf("mode error must not print a credential hint: %q", got)
	}
}

func TestReportError_Unexpected(t *testing.T) {
	var out bytes.Buffer
	reportError(newTestConsole(&out), errors.New("boom"))

	if !strings.Contains(out.String(), "Unexpected error: boom") {
		t.Errorf("got %q", out.String())
	}
}
