// Package inspect is an interactive viewer for multipart/form-data
// payloads. It decodes a payload file and lets the user browse the
// fields in a terminal UI.
package inspect

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"webshim/formdata"
)

// Load reads a raw multipart payload from disk and decodes it. The
// boundary is recovered from the payload itself, so no content type
// header is needed alongside the file.
func Load(path string) (*formdata.FormData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	fd, err := formdata.Decode(body, "")
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	return fd, nil
}

// Run loads the payload at path and blocks inside the terminal UI
// until the user quits.
func Run(path string) error {
	fd, err := Load(path)
	if err != nil {
		return err
	}

	m := newModel(path, fd)

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}
