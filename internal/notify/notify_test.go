package notify

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/markyfy/internal/config"
	"github.com/example/markyfy/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent, err error) SendFunc {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return err
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), nil).WithSender(recorder(&got, nil))
	n.Export("out.png")
	n.Copy("image")
	n.Clear("memory")
	if len(got) != 0 {
		t.Fatalf("unexpected notifications %+v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Clear("memory")
}

func TestFromConfigEnablesEvents(t *testing.T) {
	var got []sent
	n := FromConfig(config.Notify{Copy: true, Clear: true}, nil).WithSender(recorder(&got, nil))
	n.Export("x.pdf")
	n.Copy("")
	n.Clear("redis")
	if len(got) != 2 {
		t.Fatalf("got %d notifications", len(got))
	}
	if got[0].body != "Copied image to clipboard" {
		t.Errorf("copy body %q", got[0].body)
	}
	if got[1].body != "Cleared annotations in redis" {
		t.Errorf("clear body %q", got[1].body)
	}
}

func TestExportUsesAbsolutePath(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), nil).WithSender(recorder(&got, errors.New("no bus")))
	n.Enable(EventExport, true)
	n.Export("missing.pdf")
	abs, _ := filepath.Abs("missing.pdf")
	if len(got) != 1 || got[0].body != "Exported annotations to "+abs {
		t.Fatalf("unexpected %+v", got)
	}
	if got[0].opts.IconPath != "" {
		t.Fatal("non-image export should not set an icon")
	}
}

func TestLoadPreferences(t *testing.T) {
	env := map[string]string{
		"MARKYFY_NOTIFY_TITLE":      "Notes",
		"MARKYFY_NOTIFY_CLEAR_TEXT": "Wiped",
	}
	prefs := LoadPreferences(func(k string) string { return env[k] })
	if prefs.Title != "Notes" || prefs.Templates[EventClear] != "Wiped" {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	var got []sent
	n := New(prefs, nil).WithSender(recorder(&got, nil))
	n.Enable(EventClear, true)
	n.Clear("file")
	if len(got) != 1 || got[0].body != "Wiped" || got[0].title != "Notes" {
		t.Fatalf("unexpected %+v", got)
	}
}
