package appstate

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/vectoredit/internal/editor"
	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/notify"
	"github.com/example/vectoredit/internal/theme"
)

// AppState holds the editor and window configuration for the UI.
type AppState struct {
	Editor     *editor.Editor
	Document   string
	Export     string
	SaveDir    string
	Width      int
	Height     int
	Background color.RGBA
	Theme      *theme.Theme
	Notifier   *notify.Notifier

	mu       sync.Mutex
	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEditor sets the editor shown in the window.
func WithEditor(ed *editor.Editor) Option { return func(a *AppState) { a.Editor = ed } }

// WithDocument sets the file written by save.
func WithDocument(path string) Option { return func(a *AppState) { a.Document = path } }

// WithExport sets the image file written by export.
func WithExport(path string) Option { return func(a *AppState) { a.Export = path } }

// WithSaveDir sets where unnamed saves and exports are written.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithCanvas sets the canvas size and background.
func WithCanvas(width, height int, bg color.RGBA) Option {
	return func(a *AppState) {
		a.Width = width
		a.Height = height
		a.Background = bg
	}
}

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the desktop notifier used after save, export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Width:      800,
		Height:     600,
		Background: color.RGBA{255, 255, 255, 255},
		updateCh:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Editor == nil {
		a.Editor = editor.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// NotifyChanged requests a repaint of the UI when the editor mutates.
func (a *AppState) NotifyChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

// Do runs fn with exclusive access to the editor and repaints afterwards.
func (a *AppState) Do(fn func(ed *editor.Editor)) {
	a.mu.Lock()
	fn(a.Editor)
	a.mu.Unlock()
	a.NotifyChanged()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// windowSize is the initial window size for the canvas plus chrome.
func (a *AppState) windowSize() (int, int) {
	tb := layoutToolbar()
	width := a.Width + toolbarWidth
	height := max(a.Height, tb.bottom-statusHeight) + statusHeight + bottomHeight
	return width, height
}

// canvasPoint maps window coordinates to canvas coordinates.
func canvasPoint(x, y float32) geom.Point {
	return geom.Pt(float64(x)-float64(toolbarWidth), float64(y)-float64(statusHeight))
}

// snapshot captures everything the paint goroutine needs. a.mu must be held.
func (a *AppState) snapshot(s *session, width, height, hoverTool, hoverShortcut int) paintState {
	canvas := image.NewRGBA(image.Rect(0, 0, a.Width, a.Height))
	a.Editor.Render(canvas, a.Background)
	return paintState{
		width:  width,
		height: height,
		canvas: canvas,
		tools: toolState{
			mode:  a.Editor.Mode(),
			style: s.style(),
			sides: a.Editor.Sides(),
			hover: hoverTool,
		},
		status:        statusText(a.Editor),
		hoverShortcut: hoverShortcut,
		message:       s.message,
		messageUntil:  s.messageUntil,
	}
}

// clickControl applies a click on a tool column control.
func (s *session) clickControl(c control) {
	switch c.kind {
	case ctlMode:
		s.ed.SetMode(editor.Mode(c.index))
	case ctlFill:
		s.setFill(swatches()[c.index])
	case ctlStroke:
		s.setStroke(swatches()[c.index])
	case ctlWidth:
		s.setWidth(strokeWidths[c.index])
	case ctlSides:
		s.ed.SetSides(c.index)
	}
}

func (a *AppState) Main(s screen.Screen) {
	width, height := a.windowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "VectorEdit"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	if a.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-a.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	sess := newSession(a)
	ch := newChrome(a.Theme)
	tb := layoutToolbar()
	hoverTool := -1
	hoverShortcut := -1

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			ch.drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			a.mu.Lock()
			st := a.snapshot(sess, width, height, hoverTool, hoverShortcut)
			a.mu.Unlock()
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case key.Event:
			a.mu.Lock()
			repaint := sess.key(e)
			quit := sess.quit
			a.mu.Unlock()
			if quit {
				return
			}
			if repaint {
				w.Send(paint.Event{})
			}
		case mouse.Event:
			if a.mouse(sess, tb, e, width, height, &hoverTool, &hoverShortcut) {
				w.Send(paint.Event{})
			}
			a.mu.Lock()
			quit := sess.quit
			a.mu.Unlock()
			if quit {
				return
			}
		case error:
			log.Print(e)
		}
	}
}

// mouse routes a pointer event to the chrome or the canvas and reports
// whether a repaint is needed.
func (a *AppState) mouse(sess *session, tb toolbar, e mouse.Event, width, height int, hoverTool, hoverShortcut *int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	if press && sess.showingMessage() {
		sess.dismissMessage()
		return true
	}
	p := image.Pt(int(e.X), int(e.Y))

	// a drag that started on the canvas keeps going wherever the pointer is
	if !sess.down {
		if p.Y >= height-bottomHeight {
			*hoverShortcut = -1
			for i, sc := range layoutShortcuts(a.Theme, width, height, sess.trigger) {
				if p.In(sc.Rect()) {
					*hoverShortcut = i
					if press {
						sc.Activate()
					}
					break
				}
			}
			return true
		}
		if p.X < toolbarWidth && p.Y >= statusHeight {
			*hoverTool = tb.hit(p)
			if press && *hoverTool >= 0 {
				sess.clickControl(tb.controls[*hoverTool])
			}
			return true
		}
		if p.Y < statusHeight {
			return false
		}
	}
	changed := *hoverTool != -1 || *hoverShortcut != -1
	*hoverTool, *hoverShortcut = -1, -1
	if e.Direction == mouse.DirNone && !sess.down {
		return changed
	}
	sess.pointer(e, canvasPoint(e.X, e.Y))
	return true
}
