// Package toolstate holds the tool selection, the enabled flag and the derived
// drawing/texting mode of an annotation engine.
package toolstate

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Tool identifies the active annotation tool.
type Tool int

const (
	None Tool = iota
	Pen
	Pencil
	Highlighter
	Eraser
	Text
)

// ClearName is the toolbar pseudo-tool that wipes the surface without
// changing the active tool.
const ClearName = "clear"

// ErrUnknownTool is returned by ParseTool for names outside the tool table.
var ErrUnknownTool = errors.New("unknown tool")

var toolNames = map[Tool]string{
	None:        "none",
	Pen:         "pen",
	Pencil:      "pencil",
	Highlighter: "highlighter",
	Eraser:      "eraser",
	Text:        "text",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Tools lists the selectable tools in toolbar order.
func Tools() []Tool {
	return []Tool{Pen, Pencil, Highlighter, Eraser, Text}
}

// ParseTool resolves a case-insensitive tool name.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, s := range toolNames {
		if t != None && s == n {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w %q", ErrUnknownTool, name)
}

// Composite selects how a stroke blends with existing pixels.
type Composite int

const (
	// CompositeSourceOver paints the stroke colour on top of existing pixels.
	CompositeSourceOver Composite = iota
	// CompositeDestinationOut removes existing pixels where the stroke lies.
	CompositeDestinationOut
)

func (c Composite) String() string {
	if c == CompositeDestinationOut {
		return "destination-out"
	}
	return "source-over"
}

// Style is the fixed rendering style of a stroke tool.
type Style struct {
	Color     color.RGBA
	Width     float64
	Composite Composite
}

// TextColor and TextSize describe how committed text is rasterized.
var (
	TextColor = colornames.Black
	TextSize  = 16.0
)

// QueryStyle returns the style of a stroke tool. ok is false for Text and None.
func QueryStyle(t Tool) (Style, bool) {
	switch t {
	case Pen:
		return Style{Color: colornames.Black, Width: 2}, true
	case Pencil:
		return Style{Color: colornames.Gray, Width: 1}, true
	case Highlighter:
		return Style{Color: colornames.Yellow, Width: 5}, true
	case Eraser:
		return Style{Color: colornames.White, Width: 10, Composite: CompositeDestinationOut}, true
	}
	return Style{}, false
}
