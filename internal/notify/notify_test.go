package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/vectoredit/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(n *Notifier) *[]sent {
	var got []sent
	n.send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Save("a.json")
	n.Export("a.png")
	n.Copy("shape", nil)
	if len(*got) != 0 {
		t.Fatalf("unexpected notifications: %+v", *got)
	}

	var nilNotifier *Notifier
	nilNotifier.Save("a.json")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveAndExport(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "out.png")
	if err := os.WriteFile(img, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := New(DefaultPreferences())
	got := recorder(n)
	n.Enable(EventSave, true)
	n.Enable(EventExport, true)
	n.Save(filepath.Join(dir, "doc.yaml"))
	n.Export(img)

	if len(*got) != 2 {
		t.Fatalf("got %d notifications", len(*got))
	}
	if want := "Saved " + filepath.Join(dir, "doc.yaml"); (*got)[0].body != want {
		t.Errorf("save body %q, want %q", (*got)[0].body, want)
	}
	if !(*got)[0].iconExisted {
		t.Errorf("save icon %q missing while sending", (*got)[0].opts.IconPath)
	}
	if _, err := os.Stat((*got)[0].opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("save icon not cleaned up: %v", err)
	}
	if (*got)[1].opts.IconPath != img {
		t.Errorf("export icon %q", (*got)[1].opts.IconPath)
	}
	if (*got)[1].title != platform.DefaultAppName || (*got)[1].opts.AppName != platform.DefaultAppName {
		t.Errorf("unexpected title %+v", (*got)[1])
	}
}

func TestCopyPreview(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))

	if len(*got) != 1 {
		t.Fatalf("got %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied drawing to clipboard" {
		t.Errorf("body %q", s.body)
	}
	if !s.iconExisted {
		t.Errorf("preview %q missing while sending", s.opts.IconPath)
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("VECTOREDIT_NOTIFY_TITLE", "Drawings")
	t.Setenv("VECTOREDIT_NOTIFY_EXPORT_TEXT", "Wrote %s")
	t.Setenv("VECTOREDIT_NOTIFY_COPY_TEXT", "Copied")
	prefs := LoadPreferences()
	if prefs.Title != "Drawings" {
		t.Errorf("title %q", prefs.Title)
	}
	n := New(prefs)
	if got := n.body(EventExport, "x.png"); got != "Wrote x.png" {
		t.Errorf("export body %q", got)
	}
	if got := n.body(EventCopy, "shape"); got != "Copied" {
		t.Errorf("copy body %q", got)
	}
	if got := n.body(EventSave, "d.json"); got != "Saved d.json" {
		t.Errorf("save body %q", got)
	}
}
