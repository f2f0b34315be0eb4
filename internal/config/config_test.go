package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/drawings

[notify]
save = true
export = false
copy = true

[editor]
fill = lightblue
stroke = "#102030"
stroke_width = 3
sides = 6
background = none
width = 1024
height = 768
examples = false

[theme.my_custom_theme]
Background = #111111
Selection: red
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/drawings" {
		t.Errorf("Expected save_dir '/tmp/drawings', got '%s'", cfg.SaveDir)
	}
	if cfg.Notify != (Notify{Save: true, Copy: true}) {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}

	want := Editor{
		Fill:        color.RGBA{173, 216, 230, 255},
		Stroke:      color.RGBA{0x10, 0x20, 0x30, 255},
		StrokeWidth: 3,
		Sides:       6,
		Width:       1024,
		Height:      768,
	}
	if cfg.Editor != want {
		t.Errorf("Editor = %+v, want %+v", cfg.Editor, want)
	}
	if st := cfg.Editor.Style(); st.StrokeWidth != 3 || st.Fill != want.Fill {
		t.Errorf("Style() = %+v", st)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Selection != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Unexpected Selection color: %+v", th.Selection)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"[notify]\nsave = maybe\n",
		"[editor]\nsides = 9\n",
		"[editor]\nstroke_width = 0\n",
		"[editor]\nfill = nocolor\n",
		"[theme.x]\nHandle = #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/drawings

[notify]
save = true
export = true
copy = false

[editor]
fill = none
stroke = blue
stroke_width = 2
sides = 4

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
Handle = #00FF0080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	l := NewLoader("1.0", "")
	if p := l.GetConfigPath(); p != "" {
		t.Fatalf("unexpected config path %q", p)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Sides != 5 {
		t.Errorf("defaults not applied: %+v", cfg.Editor)
	}

	path, err := l.SavePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "vectoredit", "config.rc"); path != want {
		t.Fatalf("SavePath = %q, want %q", path, want)
	}
	cfg.Notify.Export = true
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if p := l.GetConfigPath(); p != path {
		t.Fatalf("GetConfigPath = %q after save", p)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Notify.Export {
		t.Error("saved notify setting lost")
	}

	override := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(override, []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := NewLoader("1.0", override).GetConfigPath(); p != override {
		t.Errorf("override ignored: %q", p)
	}
}
