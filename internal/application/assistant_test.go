package application_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra/audio"
)

type assistantFixture struct {
	stream    *fakeStream
	stt       *fakeSTT
	generator *fakeGenerator
	tracker   *fakeTracker
	term      *fakeTerminal
	tempDir   string
	assistant *application.Assistant
}

func newAssistantFixture(t *testing.T, mode domain.Mode, withTracker bool, reads ...readResult) *assistantFixture {
	t.Helper()

	f := &assistantFixture{
		stream:    newFakeStream(reads...),
		stt:       &fakeSTT{text: "test transcript"},
		generator: &fakeGenerator{text: "# Result"},
		term:      newFakeTerminal(),
		tempDir:   t.TempDir(),
	}

	backend := &fakeBackend{devices: mics("USB Mic"), stream: f.stream}
	device := domain.AudioDevice{Index: 0, Name: "USB Mic", InputChannels: 1}
	logger := discardLogger()

	var publisher *application.Publisher
	if withTracker {
		f.tracker = &fakeTracker{issue: &domain.Issue{Number: 7, URL: "https://github.com/acme/widgets/issues/7"}}
		publisher = application.NewPublisher(f.tracker, logger)
	}

	f.assistant = application.NewAssistant(
		application.NewRecorder(backend, audio.NewWavFileWriter(f.tempDir), device, logger),
		application.NewTranscriber(f.stt, logger),
		application.NewRewriter(f.generator, application.TemplateFor(mode, "")),
		publisher,
		f.term,
		mode,
		logger,
	)
	return f
}

// answerAfterRecording queues terminal input once the stream has delivered
// every scripted chunk.
func (f *assistantFixture) answerAfterRecording(lines ...string) {
	f.stream.onDone = func() {
		for _, l := range lines {
			f.term.lines <- l
		}
	}
}

func (f *assistantFixture) printedContains(t *testing.T, want string) {
	t.Helper()
	for _, line := range f.term.printed() {
		if strings.Contains(line, want) {
			return
		}
	}
	t.Errorf("output %q does not contain %q", f.term.printed(), want)
}

func TestRunSession_EndToEnd(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false,
		readResult{samples: []int16{100, 200, 300}},
		readResult{samples: []int16{400}},
	)
	f.answerAfterRecording("")

	result, err := f.assistant.RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}

	if result.Transcript.Text != "test transcript" {
		t.Errorf("Transcript: got %q", result.Transcript.Text)
	}
	if result.Document.Body != "# Result" || result.Document.Mode != domain.ModeNormal {
		t.Errorf("Document: got %+v", result.Document)
	}
	if result.Issue != nil {
		t.Error("normal mode must not publish")
	}

	entries, err := os.ReadDir(f.tempDir)
	if err != nil {
		t.Fatalf("reading temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temporary recordings left behind: %d", len(entries))
	}

	f.printedContains(t, "Original Transcript: test transcript")
	f.printedContains(t, "Engineering Requirements: # Result")

	if f.stt.calls != 1 || len(f.generator.reqs) != 1 {
		t.Errorf("calls: stt %d, generator %d", f.stt.calls, len(f.generator.reqs))
	}
	if !strings.Contains(f.generator.reqs[0].System, "engineering requirements") {
		t.Errorf("normal template not used: %q", f.generator.reqs[0].System)
	}
}

func TestRunSession_NoAudio(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false)
	f.answerAfterRecording("")

	result, err := f.assistant.RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if result.Transcript.Text != "" || result.Document.Body != "" {
		t.Errorf("expected empty result, got %+v", result)
	}
	if f.stt.calls != 0 || len(f.generator.reqs) != 0 {
		t.Error("recognition and rewriting must be skipped")
	}
	f.printedContains(t, "No audio recorded")
}

func TestRunSession_AgilePMPublishes(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeAgilePM, true, readResult{samples: []int16{1, 2, 3}})
	f.generator.text = "# Add dark mode toggle\n\n## User Story\nAs a user, I want dark mode"
	f.answerAfterRecording("", "y")

	if !f.assistant.CanPublish() {
		t.Fatal("agile-pm with tracker should publish")
	}

	result, err := f.assistant.RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}

	if result.Issue == nil || result.Issue.Number != 7 {
		t.Fatalf("Issue: got %+v", result.Issue)
	}
	if result.Document.Title != "Add dark mode toggle" || f.tracker.title != "Add dark mode toggle" {
		t.Errorf("title: document %q, tracker %q", result.Document.Title, f.tracker.title)
	}
	f.printedContains(t, "GitHub Issue: # Add dark mode toggle")
	f.printedContains(t, "Created issue #7")
}

func TestRunSession_AgilePMDeclined(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeAgilePM, true, readResult{samples: []int16{1}})
	f.answerAfterRecording("", "n")

	result, err := f.assistant.RunSession(context.Background())
	if err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if result.Issue != nil || f.tracker.calls != 0 {
		t.Error("issue must not be created when declined")
	}
}

func TestRunSession_NormalModeWithTracker(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, true, readResult{samples: []int16{1}})
	f.answerAfterRecording("")

	if f.assistant.CanPublish() {
		t.Error("normal mode must not publish")
	}
	if _, err := f.assistant.RunSession(context.Background()); err != nil {
		t.Fatalf("RunSession error: %v", err)
	}
	if f.tracker.calls != 0 {
		t.Errorf("tracker calls: got %d", f.tracker.calls)
	}
}

func TestRunSession_NoSpeech(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false, readResult{samples: []int16{1}})
	f.stt.text = "ok"
	f.answerAfterRecording("")

	_, err := f.assistant.RunSession(context.Background())
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Fatalf("got %v, want ErrNoSpeech", err)
	}
	if len(f.generator.reqs) != 0 {
		t.Error("rewriter must not run without speech")
	}

	entries, _ := os.ReadDir(f.tempDir)
	if len(entries) != 0 {
		t.Errorf("temporary recordings left behind: %d", len(entries))
	}
}

func TestRun_QuitAfterSession(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false, readResult{samples: []int16{5, 6}})
	f.term.lines <- ""
	f.answerAfterRecording("", "q")

	if err := f.assistant.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	f.printedContains(t, "Engineering Requirements: # Result")
	f.printedContains(t, "Goodbye!")
}

func TestRun_SessionErrorContinues(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false, readResult{samples: []int16{5}})
	f.generator.err = errors.New("overloaded")
	f.term.lines <- ""
	f.answerAfterRecording("", "Q")

	if err := f.assistant.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	f.printedContains(t, "error: processing failed: overloaded")
	f.printedContains(t, "Goodbye!")
}

func TestRun_EndOfInput(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false)
	close(f.term.lines)

	if err := f.assistant.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	f.printedContains(t, "Goodbye!")
}

func TestRun_Canceled(t *testing.T) {
	f := newAssistantFixture(t, domain.ModeNormal, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.assistant.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
