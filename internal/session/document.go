package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/interact"
)

// ErrCorruptState is returned when a save document cannot be decoded or
// lacks a required section.
var ErrCorruptState = errors.New("corrupt save state")

// Document is the persisted whole-game state.
type Document struct {
	Game        *game.State     `json:"game"`
	Interaction *interact.State `json:"interaction"`
}

// Validate reports a missing section as ErrCorruptState.
func (d Document) Validate() error {
	switch {
	case d.Game == nil:
		return fmt.Errorf("%w: missing game section", ErrCorruptState)
	case d.Game.Parties == nil:
		return fmt.Errorf("%w: missing game.parties", ErrCorruptState)
	case d.Interaction == nil:
		return fmt.Errorf("%w: missing interaction section", ErrCorruptState)
	case d.Interaction.Log == nil:
		return fmt.Errorf("%w: missing interaction.log", ErrCorruptState)
	}
	return nil
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	return nil
}

// Decode reads and validates a document.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// WriteFile saves doc to path, replacing any previous save only once the new
// one is completely written.
func WriteFile(path string, doc Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing save: %w", err)
	}
	return nil
}

// ReadFile loads a document from path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Decode(f)
}
