// Package notify raises desktop notifications after snapshot exports,
// clipboard copies and clears.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/markyfy/internal/config"
	"github.com/example/markyfy/internal/logging"
	"github.com/example/markyfy/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when a snapshot is written to a file.
	EventExport Event = "export"
	// EventCopy fires when a snapshot is published to the clipboard.
	EventCopy Event = "copy"
	// EventClear fires when all annotations are cleared.
	EventClear Event = "clear"
)

// Preferences describes notification wording.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Markyfy",
		Templates: map[Event]string{
			EventExport: "Exported annotations to %s",
			EventCopy:   "Copied %s to clipboard",
			EventClear:  "Cleared annotations in %s",
		},
	}
}

// LoadPreferences applies MARKYFY_NOTIFY_* overrides from getenv.
func LoadPreferences(getenv func(string) string) Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("MARKYFY_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventExport: "MARKYFY_NOTIFY_EXPORT_TEXT",
		EventCopy:   "MARKYFY_NOTIFY_COPY_TEXT",
		EventClear:  "MARKYFY_NOTIFY_CLEAR_TEXT",
	} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// SendFunc delivers one notification.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends notifications for the events enabled in config. A nil
// Notifier sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
	log     *slog.Logger
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences, log *slog.Logger) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify, log: log}
}

// FromConfig enables the events switched on in the [notify] section.
func FromConfig(n config.Notify, log *slog.Logger) *Notifier {
	nt := New(LoadPreferences(os.Getenv), log)
	nt.Enable(EventExport, n.Export)
	nt.Enable(EventCopy, n.Copy)
	nt.Enable(EventClear, n.Clear)
	return nt
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(fn SendFunc) *Notifier {
	n.send = fn
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Export reports a snapshot written to path, showing it as the icon when the
// file is an image.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.EqualFold(filepath.Ext(abs), ".png") {
			if _, statErr := os.Stat(abs); statErr == nil {
				opts.IconPath = abs
			}
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy reports a clipboard copy; what names the format.
func (n *Notifier) Copy(what string) {
	if strings.TrimSpace(what) == "" {
		what = "image"
	}
	n.dispatch(EventCopy, what, platform.Options{})
}

// Clear reports a clear of the named store.
func (n *Notifier) Clear(store string) {
	n.dispatch(EventClear, store, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := template
	if strings.Contains(template, "%") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	}
	if err := n.send(n.prefs.Title, strings.TrimSpace(body), opts); err != nil {
		n.log.Warn("notification failed", "event", string(event), "error", err)
	}
}
