package domain

import "fmt"

// AudioDevice describes an audio device as reported by the capture backend.
type AudioDevice struct {
	Index         int
	Name          string
	InputChannels int
	SampleRate    float64
}

// IsInput reports whether the device can capture audio.
func (d AudioDevice) IsInput() bool {
	return d.InputChannels > 0
}

func (d AudioDevice) String() string {
	return fmt.Sprintf("%d: %s (%d channels, %d Hz)", d.Index, d.Name, d.InputChannels, int(d.SampleRate))
}

// Capture settings used for every recording.
const (
	SampleRate     = 44100
	Channels       = 1
	BitDepth       = 16
	FramesPerChunk = 4096
)

// RecordingSession is one capture cycle. Path is the temporary WAV file and
// is only valid until the session is transcribed.
type RecordingSession struct {
	ID          string
	DeviceIndex int
	SampleRate  int
	Channels    int
	Chunks      int
	Path        string
}
