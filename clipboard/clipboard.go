// Package clipboard abstracts the system clipboard behind small
// capability interfaces so the runtime never depends on platform
// clipboard access directly.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Writer copies derived text to wherever "the clipboard" is. A failed
// write is reported, never fatal; callers fall back to showing the
// text for manual copying.
type Writer interface {
	Write(text string) error
}

// Reader reads the clipboard, used by the paste-and-parse flow.
type Reader interface {
	Read() (string, error)
}

// System is the platform-backed clipboard.
type System struct{}

func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (System) Read() (string, error) {
	return clipboard.ReadAll()
}

// Memory is the in-process fake for tests.
type Memory struct {
	Contents string
	WriteErr error
	ReadErr  error
}

func (m *Memory) Write(text string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Contents = text
	return nil
}

func (m *Memory) Read() (string, error) {
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Contents, nil
}
