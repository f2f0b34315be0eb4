package appstate

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/vectoredit/internal/clipboard"
	"github.com/example/vectoredit/internal/document"
	"github.com/example/vectoredit/internal/editor"
	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/render"
	"github.com/example/vectoredit/internal/shape"
)

// Double clicks closer than this in time and distance complete a polyline.
const (
	doubleClickTime     = 400 * time.Millisecond
	doubleClickDistance = 4
)

const messageDuration = 2 * time.Second

var strokeWidths = []float64{1, 2, 3, 4, 6, 8}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// session feeds window input into the editor. It is only touched from the
// event goroutine, with AppState.mu held while the editor is used.
type session struct {
	app *AppState
	ed  *editor.Editor

	down  bool
	last  geom.Point
	shift bool

	lastClick   time.Time
	lastClickAt geom.Point

	message      string
	messageUntil time.Time
	quit         bool

	actions map[string]func()
	keys    map[KeyShortcut]string
	now     func() time.Time
}

func newSession(a *AppState) *session {
	s := &session{
		app:     a,
		ed:      a.Editor,
		actions: map[string]func(){},
		keys:    map[KeyShortcut]string{},
		now:     time.Now,
	}
	s.registerActions()
	return s
}

func (s *session) register(name string, keys KeyboardShortcuts, fn func()) {
	s.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			s.keys[sc] = name
		}
	}
}

func (s *session) registerActions() {
	ctrl := key.ModControl
	modeKeys := map[editor.Mode]rune{
		editor.ModeSelect:    'v',
		editor.ModeRectangle: 'r',
		editor.ModeEllipse:   'e',
		editor.ModeLine:      'l',
		editor.ModeBezier:    'b',
		editor.ModePolyline:  'p',
		editor.ModePolygon:   'g',
	}
	for m, r := range modeKeys {
		m := m
		s.register(m.String(), shortcutList{{Rune: r}}, func() { s.ed.SetMode(m) })
	}
	for n := shape.MinSides; n <= shape.MaxSides; n++ {
		n := n
		s.register(fmt.Sprintf("sides%d", n), shortcutList{{Rune: rune('0' + n)}}, func() { s.ed.SetSides(n) })
	}

	s.register("cancel", shortcutList{{Code: key.CodeEscape}}, func() {
		s.ed.CancelDrawing()
		s.down = false
	})
	s.register("delete", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, func() {
		s.ed.DeleteSelected()
	})
	s.register("complete", shortcutList{{Code: key.CodeReturnEnter}}, func() { s.ed.CompletePolyline() })
	s.register("close", shortcutList{{Rune: 'c'}}, func() { s.ed.SetClosed(true) })
	s.register("open", shortcutList{{Rune: 'o'}}, func() { s.ed.SetClosed(false) })
	s.register("thinner", shortcutList{{Rune: '['}}, func() { s.stepWidth(-1) })
	s.register("thicker", shortcutList{{Rune: ']'}}, func() { s.stepWidth(1) })
	s.register("duplicate", shortcutList{{Rune: 'd', Modifiers: ctrl}}, func() { s.ed.Duplicate() })
	s.register("save", shortcutList{{Rune: 's', Modifiers: ctrl}}, s.save)
	s.register("export", shortcutList{{Rune: 'e', Modifiers: ctrl}}, s.export)
	s.register("copy", shortcutList{{Rune: 'c', Modifiers: ctrl}}, s.copyCanvas)
	s.register("copyshape", shortcutList{{Rune: 'c', Modifiers: ctrl | key.ModShift}}, s.copyShape)
	s.register("paste", shortcutList{{Rune: 'v', Modifiers: ctrl}}, s.paste)
	s.register("quit", shortcutList{{Rune: 'q', Modifiers: ctrl}}, func() { s.quit = true })
}

// trigger runs the named action. Unknown names are ignored.
func (s *session) trigger(name string) {
	if fn, ok := s.actions[name]; ok {
		fn()
	}
}

// lookup maps a key press to an action. Shift only counts together with
// control so that capital letters select the same tools.
func (s *session) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	if mods&key.ModControl == 0 {
		mods = 0
	}
	if name, ok := s.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok && e.Code != key.CodeUnknown {
		return name, true
	}
	if e.Rune > 0 {
		name, ok := s.keys[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]
		return name, ok
	}
	return "", false
}

// key handles a keyboard event and reports whether the window needs a
// repaint.
func (s *session) key(e key.Event) bool {
	if e.Code == key.CodeLeftShift || e.Code == key.CodeRightShift {
		switch e.Direction {
		case key.DirPress:
			s.setShift(true)
		case key.DirRelease:
			s.setShift(false)
		}
		return s.down
	}
	if e.Direction != key.DirPress {
		return false
	}
	name, ok := s.lookup(e)
	if !ok {
		return false
	}
	s.trigger(name)
	return true
}

// setShift re-applies the drag under the new constraint when shift
// changes mid-gesture.
func (s *session) setShift(shift bool) {
	if s.shift == shift {
		return
	}
	s.shift = shift
	if s.down {
		s.ed.ContinueDrawing(s.last, shift)
	}
}

// pointer handles a mouse event at canvas position p.
func (s *session) pointer(e mouse.Event, p geom.Point) {
	shift := e.Modifiers&key.ModShift != 0
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return
		}
		s.shift = shift
		if s.doubleClick(p) {
			s.ed.CompletePolyline()
			return
		}
		s.down = true
		s.last = p
		s.ed.StartDrawing(p, shift)
	case mouse.DirNone:
		if !s.down {
			return
		}
		s.shift = shift
		s.last = p
		s.ed.ContinueDrawing(p, shift)
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !s.down {
			return
		}
		s.down = false
		s.shift = shift
		s.last = p
		s.ed.EndDrawing(p, shift)
	}
}

// doubleClick records a press and reports whether it completes a double
// click while a polyline is being built.
func (s *session) doubleClick(p geom.Point) bool {
	now := s.now()
	double := s.ed.Mode() == editor.ModePolyline &&
		now.Sub(s.lastClick) <= doubleClickTime &&
		geom.Distance(p, s.lastClickAt) <= doubleClickDistance
	if double {
		s.lastClick = time.Time{}
		return true
	}
	s.lastClick = now
	s.lastClickAt = p
	return false
}

// style returns the paint shown in the tool column: the selection's when
// there is one, otherwise the defaults for new shapes.
func (s *session) style() shape.Style {
	if sel := s.ed.Selected(); sel != nil {
		return sel.Style()
	}
	return s.ed.Defaults()
}

func (s *session) setFill(c color.RGBA) {
	if s.ed.Selected() != nil {
		s.ed.SetFill(c)
		return
	}
	st := s.ed.Defaults()
	st.Fill = c
	s.ed.SetDefaults(st)
}

func (s *session) setStroke(c color.RGBA) {
	if s.ed.Selected() != nil {
		s.ed.SetStroke(c)
		return
	}
	st := s.ed.Defaults()
	st.Stroke = c
	s.ed.SetDefaults(st)
}

func (s *session) setWidth(w float64) {
	if s.ed.Selected() != nil {
		s.ed.SetStrokeWidth(w)
		return
	}
	st := s.ed.Defaults()
	st.StrokeWidth = w
	s.ed.SetDefaults(st)
}

// stepWidth moves to the next listed width below (dir < 0) or above the
// current one.
func (s *session) stepWidth(dir int) {
	cur := s.style().StrokeWidth
	i := sort.SearchFloat64s(strokeWidths, cur)
	switch {
	case dir < 0 && i > 0:
		s.setWidth(strokeWidths[i-1])
	case dir > 0 && i < len(strokeWidths) && strokeWidths[i] > cur:
		s.setWidth(strokeWidths[i])
	case dir > 0 && i+1 < len(strokeWidths):
		s.setWidth(strokeWidths[i+1])
	}
}

func (s *session) notice(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
	log.Print(msg)
}

func (s *session) showingMessage() bool {
	return s.message != "" && s.now().Before(s.messageUntil)
}

func (s *session) dismissMessage() { s.messageUntil = time.Time{} }

// outputPath returns path, or a timestamped file in the save directory.
func (s *session) outputPath(path, ext string) string {
	if path != "" {
		return path
	}
	name := "drawing-" + s.now().Format("20060102-150405") + ext
	return filepath.Join(s.app.SaveDir, name)
}

func (s *session) save() {
	path := s.outputPath(s.app.Document, ".yaml")
	doc := document.FromShapes(s.app.Width, s.app.Height, s.app.Background, s.ed.Shapes())
	if err := document.Save(path, doc); err != nil {
		log.Printf("save: %v", err)
		return
	}
	s.app.Document = path
	s.notice(fmt.Sprintf("saved %s", path))
	s.app.Notifier.Save(path)
}

func (s *session) rendered() (*image.RGBA, error) {
	return render.Image(s.ed.Shapes(), render.Options{Width: s.app.Width, Height: s.app.Height, Background: s.app.Background})
}

func (s *session) export() {
	path := s.outputPath(s.app.Export, ".png")
	img, err := s.rendered()
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("export: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	if err := render.Encode(f, path, img); err != nil {
		log.Printf("export: %v", err)
		if cerr := f.Close(); cerr != nil {
			log.Printf("export: closing file: %v", cerr)
		}
		return
	}
	if err := f.Close(); err != nil {
		log.Printf("export: closing file: %v", err)
		return
	}
	s.notice(fmt.Sprintf("exported %s", path))
	s.app.Notifier.Export(path)
}

func (s *session) copyCanvas() {
	img, err := s.rendered()
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	if err := clipboard.WriteImage(img); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	s.notice("canvas copied to clipboard")
	s.app.Notifier.Copy("canvas", img)
}

func (s *session) copyShape() {
	sel := s.ed.Selected()
	if sel == nil {
		return
	}
	if err := clipboard.CopyShapes([]*shape.Shape{sel}); err != nil {
		log.Printf("copy shape: %v", err)
		return
	}
	s.notice(fmt.Sprintf("%s copied to clipboard", sel.Kind))
	s.app.Notifier.Copy(sel.Kind.String(), nil)
}

func (s *session) paste() {
	shapes, err := clipboard.PasteShapes()
	if err != nil {
		log.Printf("paste: %v", err)
		return
	}
	s.ed.Add(shapes...)
	s.ed.Select(shapes[len(shapes)-1].ID)
	s.notice(fmt.Sprintf("pasted %d shape(s)", len(shapes)))
}
