package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"voice-to-docs/internal/application"
)

const pcmFormat = 1

// WavFileWriter writes recordings as PCM WAV files into dir, or the OS temp
// dir when dir is empty.
type WavFileWriter struct {
	dir string
}

func NewWavFileWriter(dir string) *WavFileWriter {
	return &WavFileWriter{dir: dir}
}

func (w *WavFileWriter) WriteTemp(sessionID string, samples []int16, format application.AudioFormat) (string, error) {
	f, err := os.CreateTemp(w.dir, "voice-to-docs-"+sessionID+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()

	if err := encodeWav(f, samples, format); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

func encodeWav(f *os.File, samples []int16, format application.AudioFormat) error {
	enc := wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, pcmFormat)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: format.BitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
