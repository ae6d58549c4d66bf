// Package theme reads and writes theme documents: a palette, a font and the
// set of locked roles, exchanged as JSON or YAML.
package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bstheme/internal/font"
	"github.com/jmylchreest/bstheme/internal/palette"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
}

// FormatFromPath picks a format from the file extension, or fallback when the
// extension is not recognised.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return fallback
}

// Document is the persisted state of a theme.
type Document struct {
	Palette palette.Palette `json:"palette" yaml:"palette"`
	Font    string          `json:"font" yaml:"font" validate:"required,fontname"`
	Locks   []palette.Role  `json:"locks,omitempty" yaml:"locks,omitempty" validate:"omitempty,dive,role"`
}

// Default returns the stock Bootstrap theme with the system font and no locks.
func Default() Document {
	return Document{
		Palette: palette.Default(),
		Font:    font.Default().Name,
	}
}

// Typeface resolves the document font, falling back to the system font for
// names outside the catalog.
func (d Document) Typeface() font.Font {
	if f, ok := font.ByName(d.Font); ok {
		return f
	}
	return font.Default()
}

// LockSet returns the document locks as a set.
func (d Document) LockSet() palette.LockSet {
	return palette.NewLockSet(d.Locks...)
}

// SetLocks locks or unlocks the given roles.
func (d *Document) SetLocks(locked bool, roles ...palette.Role) {
	set := d.LockSet()
	for _, r := range roles {
		if locked {
			set[r] = true
		} else {
			delete(set, r)
		}
	}
	d.Locks = set.Roles()
}

// ToggleLock flips the lock on role and reports the new state.
func (d *Document) ToggleLock(role palette.Role) bool {
	locked := !d.LockSet().Locked(role)
	d.SetLocks(locked, role)
	return locked
}

// Decode reads a document. Roles missing from the input keep their Bootstrap
// defaults. A bare palette mapping (the ten role keys at the top level) is
// accepted as a document with the default font and no locks.
func Decode(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read theme: %w", err)
	}

	var probe map[string]any
	if err := unmarshal(data, format, &probe); err != nil {
		return Document{}, fmt.Errorf("failed to parse theme %s: %w", format, err)
	}

	doc := Default()
	if _, ok := probe["palette"]; ok {
		err = unmarshal(data, format, &doc)
	} else {
		err = unmarshal(data, format, &doc.Palette)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse theme %s: %w", format, err)
	}

	doc.normalise()
	return doc, nil
}

// normalise expands shorthand colours, canonicalises the font name and
// orders locks by role.
func (d *Document) normalise() {
	d.Palette = d.Palette.Canonical()
	if f, ok := font.ByName(d.Font); ok {
		d.Font = f.Name
	}
	if d.Locks != nil {
		roles := make([]palette.Role, 0, len(d.Locks))
		unknown := make([]palette.Role, 0)
		for _, r := range d.Locks {
			if r.Valid() {
				roles = append(roles, r)
			} else {
				unknown = append(unknown, r)
			}
		}
		// Unknown roles are kept so Validate can report them.
		d.Locks = append(palette.NewLockSet(roles...).Roles(), unknown...)
	}
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Encode writes the document in the given format.
func (d Document) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode theme: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode theme: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// ReadFile decodes the document at path, choosing the format from its extension.
func ReadFile(path string) (Document, error) {
	return ReadFileAs(path, FormatFromPath(path, FormatYAML))
}

// ReadFileAs decodes the document at path in the given format.
func ReadFileAs(path string, format Format) (Document, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified theme path
	if err != nil {
		return Document{}, fmt.Errorf("failed to open theme: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// WriteFile encodes the document to path, choosing the format from its extension.
func WriteFile(path string, d Document) error {
	return WriteFileAs(path, d, FormatFromPath(path, FormatYAML))
}

// WriteFileAs encodes the document to path in the given format, creating
// parent directories as needed.
func WriteFileAs(path string, d Document, format Format) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}
	return nil
}
