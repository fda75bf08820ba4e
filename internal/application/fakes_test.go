package application_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBackend struct {
	devices []domain.AudioDevice
	infoErr map[int]error
	stream  *fakeStream
	openErr error
}

func (f *fakeBackend) DeviceCount() (int, error) { return len(f.devices), nil }

func (f *fakeBackend) DeviceInfo(index int) (domain.AudioDevice, error) {
	if err := f.infoErr[index]; err != nil {
		return domain.AudioDevice{}, err
	}
	if index < 0 || index >= len(f.devices) {
		return domain.AudioDevice{}, fmt.Errorf("device index %d out of range", index)
	}
	d := f.devices[index]
	d.Index = index
	return d, nil
}

func (f *fakeBackend) OpenInput(_ int, _ application.AudioFormat) (application.InputStream, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.stream, nil
}

type readResult struct {
	samples []int16
	err     error
}

// fakeStream replays reads, then calls onDone once and keeps reporting
// overflows until the recorder stops.
type fakeStream struct {
	reads  []readResult
	onDone func()

	mu       sync.Mutex
	next     int
	doneOnce sync.Once
	done     chan struct{}
	started  bool
	closed   int
}

func newFakeStream(reads ...readResult) *fakeStream {
	return &fakeStream{reads: reads, done: make(chan struct{})}
}

func (s *fakeStream) Start() error {
	s.started = true
	return nil
}

func (s *fakeStream) Read() ([]int16, error) {
	s.mu.Lock()
	if s.next < len(s.reads) {
		r := s.reads[s.next]
		s.next++
		s.mu.Unlock()
		return r.samples, r.err
	}
	s.mu.Unlock()

	s.doneOnce.Do(func() {
		close(s.done)
		if s.onDone != nil {
			s.onDone()
		}
	})
	time.Sleep(time.Millisecond)
	return nil, application.ErrInputOverflow
}

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeStream) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// waitDone stops the recording once every scripted read was consumed.
func (s *fakeStream) waitDone(ctx context.Context) {
	select {
	case <-s.done:
	case <-ctx.Done():
	}
}

type fakeSTT struct {
	text  string
	err   error
	calls int
	opts  application.RecognizeOptions
	check func(path string)
}

func (f *fakeSTT) Transcribe(_ context.Context, path string, opts application.RecognizeOptions) (string, error) {
	f.calls++
	f.opts = opts
	if f.check != nil {
		f.check(path)
	}
	return f.text, f.err
}

type fakeGenerator struct {
	text string
	err  error
	reqs []application.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req application.GenerateRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

type fakeTracker struct {
	issue  *domain.Issue
	err    error
	title  string
	body   string
	labels []string
	calls  int
}

func (f *fakeTracker) CreateIssue(_ context.Context, title, body string, labels []string) (*domain.Issue, error) {
	f.calls++
	f.title, f.body, f.labels = title, body, labels
	return f.issue, f.err
}

type fakeTerminal struct {
	lines chan string

	mu     sync.Mutex
	output []string
}

func newFakeTerminal(initial ...string) *fakeTerminal {
	t := &fakeTerminal{lines: make(chan string, 16)}
	for _, l := range initial {
		t.lines <- l
	}
	return t
}

func (t *fakeTerminal) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (t *fakeTerminal) record(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.output = append(t.output, s)
}

func (t *fakeTerminal) Info(msg string)            { t.record(msg) }
func (t *fakeTerminal) Success(msg string)         { t.record(msg) }
func (t *fakeTerminal) Warn(msg string)            { t.record(msg) }
func (t *fakeTerminal) Error(msg string)           { t.record("error: " + msg) }
func (t *fakeTerminal) Section(title, body string) { t.record(title + ": " + body) }

func (t *fakeTerminal) printed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.output...)
}
