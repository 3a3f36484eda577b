// Package annotate manages the transient text field used to place text notes
// and rasterizes the committed text onto the surface.
package annotate

import (
	"image"
	"unicode/utf8"

	"github.com/example/markyfy/internal/surface"
)

// Commit is the final text of one field and where it was anchored.
type Commit struct {
	Text string
	At   surface.Point
}

// Field is an open editable text field.
type Field struct {
	Text string
	At   surface.Point
}

// Outcome describes what closing a field did.
type Outcome struct {
	Commit Commit
	// Rendered is set when text was rasterized onto the surface.
	Rendered bool
	Dirty    image.Rectangle
}

// Annotator owns at most one open field.
type Annotator struct {
	surf  *surface.Surface
	field *Field
}

// New returns an annotator drawing onto surf.
func New(surf *surface.Surface) *Annotator {
	return &Annotator{surf: surf}
}

// Field returns the open field, if any.
func (a *Annotator) Field() (Field, bool) {
	if a.field == nil {
		return Field{}, false
	}
	return *a.field, true
}

// Open creates a new empty field anchored at p. The caller closes any
// previously open field first.
func (a *Annotator) Open(p surface.Point) {
	a.field = &Field{At: p}
}

// Insert appends r to the open field.
func (a *Annotator) Insert(r rune) bool {
	if a.field == nil || r < ' ' || r == utf8.RuneError {
		return false
	}
	a.field.Text += string(r)
	return true
}

// Backspace removes the last rune of the open field.
func (a *Annotator) Backspace() bool {
	if a.field == nil || a.field.Text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(a.field.Text)
	a.field.Text = a.field.Text[:len(a.field.Text)-size]
	return true
}

// Confirm closes the field through the commit key. The text is rasterized
// even when empty. ok is false when no field was open.
func (a *Annotator) Confirm() (Outcome, bool, error) {
	return a.close(true)
}

// Blur closes the field after a focus loss. Only non-empty text is
// rasterized. ok is false when no field was open.
func (a *Annotator) Blur() (Outcome, bool, error) {
	return a.close(false)
}

func (a *Annotator) close(confirmed bool) (Outcome, bool, error) {
	if a.field == nil {
		return Outcome{}, false, nil
	}
	f := a.field
	a.field = nil
	out := Outcome{Commit: Commit{Text: f.Text, At: f.At}}
	if !confirmed && f.Text == "" {
		return out, true, nil
	}
	dirty, err := a.surf.DrawText(f.Text, f.At)
	if err != nil {
		return out, true, err
	}
	out.Rendered = true
	out.Dirty = dirty
	return out, true, nil
}
