package domain

import "fmt"

type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeAgilePM Mode = "agile-pm"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeNormal, ModeAgilePM}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &ConfigError{Msg: fmt.Sprintf("unknown mode %q (supported: normal, agile-pm)", s)}
}

// Publishes reports whether documents produced in this mode may be filed as issues.
func (m Mode) Publishes() bool {
	return m == ModeAgilePM
}

// TranscriptLanguage is the only language passed to the recognizer.
const TranscriptLanguage = "en"

type Transcript struct {
	Text     string
	Language string
}

type Document struct {
	Body  string
	Mode  Mode
	Title string
}

type Issue struct {
	Number int
	URL    string
}
