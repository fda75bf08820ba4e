package application

import "context"

// Terminal is the line-oriented user interface of the interactive loop.
type Terminal interface {
	ReadLine(ctx context.Context) (string, error)
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Section(title, body string)
}
