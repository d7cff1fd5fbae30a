package record

import (
	"errors"
)

var (
	ErrOpen      = errors.New("record: cannot open stream")
	ErrSignature = errors.New("record: bad signature")
	ErrFormat    = errors.New("record: malformed record")
	ErrWrite     = errors.New("record: write failed")
	ErrBusy      = errors.New("record: session already active")
)

// Negative result codes for bindings that cannot carry an error value
const (
	CodeOK        = 0
	CodeError     = -1
	CodeSignature = -2
	CodeFormat    = -3
	CodeWrite     = -4
	CodeBusy      = -5
)

// Code maps err to its result code, CodeOK for nil
func Code(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrSignature):
		return CodeSignature
	case errors.Is(err, ErrFormat):
		return CodeFormat
	case errors.Is(err, ErrWrite):
		return CodeWrite
	case errors.Is(err, ErrBusy):
		return CodeBusy
	}
	return CodeError
}
