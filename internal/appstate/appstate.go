package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/vectoredit/internal/editor"
	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/raster"
	"github.com/example/vectoredit/internal/shape"
	"github.com/example/vectoredit/internal/theme"
)

const (
	statusHeight = 24
	bottomHeight = 24
	modeHeight   = 22
	labelHeight  = 14
	swatchSize   = 16
	swatchStride = 18
	widthHeight  = 16
	sidesWidth   = 20
)

var toolbarWidth = 96

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var modeLabels = map[editor.Mode]string{
	editor.ModeSelect:    "V:Select",
	editor.ModeRectangle: "R:Rect",
	editor.ModeEllipse:   "E:Ellipse",
	editor.ModeLine:      "L:Line",
	editor.ModeBezier:    "B:Bezier",
	editor.ModePolyline:  "P:Polyline",
	editor.ModePolygon:   "G:Polygon",
}

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}

	// widen the tool column to fit every label
	d := &font.Drawer{Face: basicfont.Face7x13}
	for _, lbl := range modeLabels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > toolbarWidth {
			toolbarWidth = w
		}
	}
}

// swatches lists the colors offered in the tool column: the palette
// followed by None.
func swatches() []color.RGBA {
	var out []color.RGBA
	for _, c := range palette.Colors() {
		out = append(out, c.Color)
	}
	return append(out, palette.None)
}

type controlKind int

const (
	ctlMode controlKind = iota
	ctlFill
	ctlStroke
	ctlWidth
	ctlSides
)

// control is a clickable area of the tool column.
type control struct {
	kind  controlKind
	index int
	rect  image.Rectangle
}

type label struct {
	text string
	at   image.Point
}

type toolbar struct {
	controls []control
	labels   []label
	bottom   int
}

// layoutToolbar places the tool column. Drawing and hit testing share it.
func layoutToolbar() toolbar {
	var tb toolbar
	y := statusHeight
	for i := range editor.Modes() {
		tb.controls = append(tb.controls, control{kind: ctlMode, index: i, rect: image.Rect(0, y, toolbarWidth, y+modeHeight)})
		y += modeHeight
	}

	cols := max((toolbarWidth-4)/swatchStride, 1)
	colors := swatches()
	grid := func(kind controlKind, title string) {
		y += 4
		tb.labels = append(tb.labels, label{title, image.Pt(4, y+11)})
		y += labelHeight
		for i := range colors {
			x := 4 + (i%cols)*swatchStride
			row := y + (i/cols)*swatchStride
			tb.controls = append(tb.controls, control{kind: kind, index: i, rect: image.Rect(x, row, x+swatchSize, row+swatchSize)})
		}
		y += (len(colors) + cols - 1) / cols * swatchStride
	}
	grid(ctlFill, "Fill")
	grid(ctlStroke, "Stroke")

	y += 4
	tb.labels = append(tb.labels, label{"Width", image.Pt(4, y+11)})
	y += labelHeight
	for i := range strokeWidths {
		tb.controls = append(tb.controls, control{kind: ctlWidth, index: i, rect: image.Rect(0, y, toolbarWidth, y+widthHeight)})
		y += widthHeight
	}

	y += 4
	tb.labels = append(tb.labels, label{"Sides", image.Pt(4, y+11)})
	y += labelHeight
	for n := shape.MinSides; n <= shape.MaxSides; n++ {
		x := 4 + (n-shape.MinSides)*(sidesWidth+2)
		tb.controls = append(tb.controls, control{kind: ctlSides, index: n, rect: image.Rect(x, y, x+sidesWidth, y+sidesWidth)})
	}
	tb.bottom = y + sidesWidth + 4
	return tb
}

// hit returns the index of the control containing p, or -1.
func (tb toolbar) hit(p image.Point) int {
	for i, c := range tb.controls {
		if p.In(c.rect) {
			return i
		}
	}
	return -1
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents a drawable UI element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// buttonColors picks the background and text color of a themed button.
func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.RGBA) {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover, th.ButtonText
	case StatePressed:
		return th.ButtonBackgroundPress, th.ButtonText
	}
	return th.ButtonBackground, th.ButtonText
}

// ModeButton shows an editor tool. Clicks are routed through the toolbar
// layout.
type ModeButton struct {
	label string
	theme *theme.Theme
	rect  image.Rectangle
}

func (mb *ModeButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(mb.theme, state)
	draw.Draw(dst, mb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(mb.rect.Min.X+4, mb.rect.Min.Y+15)}
	d.DrawString(mb.label)
}

func (mb *ModeButton) Rect() image.Rectangle { return mb.rect }

func (mb *ModeButton) SetRect(r image.Rectangle) { mb.rect = r }

// Shortcut is a clickable hint in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	theme  *theme.Theme
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(s.theme, state)
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	raster.DrawRectangle(dst, s.rect.Min.X, s.rect.Min.Y, s.rect.Dx(), s.rect.Dy(), s.theme.ButtonBorder, false)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

// Activate runs the hint's action.
func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

var shortcutHints = []struct{ label, action string }{
	{"Esc:cancel", "cancel"},
	{"Enter:finish", "complete"},
	{"Del:delete", "delete"},
	{"^D:dup", "duplicate"},
	{"^S:save", "save"},
	{"^E:export", "export"},
	{"^C:copy", "copy"},
	{"^⇧C:copy shape", "copyshape"},
	{"^V:paste", "paste"},
	{"C/O:close/open", "close"},
	{"[ ]:width", "thicker"},
	{"^Q:quit", "quit"},
}

// layoutShortcuts places the bottom bar hints for a window of the given
// size. trigger receives the action name of a clicked hint.
func layoutShortcuts(th *theme.Theme, width, height int, trigger func(string)) []Shortcut {
	x := 4
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	var out []Shortcut
	for _, h := range shortcutHints {
		action := h.action
		w := meas.MeasureString(h.label).Ceil()
		sc := Shortcut{label: h.label, theme: th, action: func() { trigger(action) }}
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		if sc.rect.Max.X > width {
			break
		}
		out = append(out, sc)
		x = sc.rect.Max.X + 8
	}
	return out
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

// drawSwatch paints one color choice. None is shown as white with a red
// slash.
func drawSwatch(dst *image.RGBA, r image.Rectangle, c color.RGBA, selected, hover bool, th *theme.Theme) {
	if c.A == 0 {
		draw.Draw(dst, r, image.White, image.Point{}, draw.Src)
		raster.DrawLine(dst, r.Min.X, r.Max.Y-1, r.Max.X-1, r.Min.Y, color.RGBA{255, 0, 0, 255})
	} else {
		draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
	}
	if hover {
		draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
	}
	border := th.ButtonBorder
	if selected {
		border = th.Selection
		raster.DrawRectangle(dst, r.Min.X-1, r.Min.Y-1, r.Dx()+2, r.Dy()+2, border, false)
	}
	raster.DrawRectangle(dst, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), border, false)
}

// toolState is what the tool column highlights.
type toolState struct {
	mode  editor.Mode
	style shape.Style
	sides int
	hover int
}

func drawToolbar(dst *image.RGBA, tb toolbar, buttons []*CacheButton, st toolState, th *theme.Theme) {
	draw.Draw(dst, image.Rect(0, statusHeight, toolbarWidth, dst.Bounds().Max.Y-bottomHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	colors := swatches()
	for i, c := range tb.controls {
		hover := i == st.hover
		switch c.kind {
		case ctlMode:
			state := StateDefault
			if editor.Mode(c.index) == st.mode {
				state = StatePressed
			} else if hover {
				state = StateHover
			}
			cb := buttons[c.index]
			cb.SetRect(c.rect)
			cb.Draw(dst, state)
		case ctlFill:
			drawSwatch(dst, c.rect, colors[c.index], colors[c.index] == st.style.Fill, hover, th)
		case ctlStroke:
			drawSwatch(dst, c.rect, colors[c.index], colors[c.index] == st.style.Stroke, hover, th)
		case ctlWidth:
			w := strokeWidths[c.index]
			state := StateDefault
			if w == st.style.StrokeWidth {
				state = StatePressed
			} else if hover {
				state = StateHover
			}
			bg, fg := buttonColors(th, state)
			draw.Draw(dst, c.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13, Dot: fixed.P(4, c.rect.Min.Y+12)}
			d.DrawString(fmt.Sprintf("%g", w))
			mid := c.rect.Min.Y + widthHeight/2
			raster.DrawThickLine(dst, 30, mid, toolbarWidth-6, mid, st.style.Stroke, int(w))
		case ctlSides:
			state := StateDefault
			if c.index == st.sides {
				state = StatePressed
			} else if hover {
				state = StateHover
			}
			bg, fg := buttonColors(th, state)
			draw.Draw(dst, c.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
			raster.DrawRectangle(dst, c.rect.Min.X, c.rect.Min.Y, c.rect.Dx(), c.rect.Dy(), th.ButtonBorder, false)
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13, Dot: fixed.P(c.rect.Min.X+7, c.rect.Min.Y+14)}
			d.DrawString(fmt.Sprintf("%d", c.index))
		}
	}
	for _, l := range tb.labels {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13, Dot: fixed.P(l.at.X, l.at.Y)}
		d.DrawString(l.text)
	}
}

// statusText summarises the editor for the top bar.
func statusText(ed *editor.Editor) string {
	txt := fmt.Sprintf("%s | %s | %d shapes", ed.Mode(), ed.Interaction(), ed.Len())
	if sel := ed.Selected(); sel != nil {
		b := sel.Bounds()
		txt += fmt.Sprintf(" | %s %.0fx%.0f at (%.0f,%.0f)", sel.Kind, b.Dx(), b.Dy(), b.Min.X, b.Min.Y)
		if sel.Angle != 0 {
			txt += fmt.Sprintf(" rot %.0f°", sel.Angle)
		}
	}
	return txt
}

type paintState struct {
	width, height int
	canvas        *image.RGBA
	tools         toolState
	status        string
	hoverShortcut int
	message       string
	messageUntil  time.Time
}

// chrome holds the parts of the window owned by the paint goroutine.
type chrome struct {
	theme   *theme.Theme
	toolbar toolbar
	buttons []*CacheButton
}

func newChrome(th *theme.Theme) *chrome {
	c := &chrome{theme: th, toolbar: layoutToolbar()}
	for _, m := range editor.Modes() {
		c.buttons = append(c.buttons, &CacheButton{Button: &ModeButton{label: modeLabels[m], theme: th}})
	}
	return c
}

func (c *chrome) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := c.theme

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if st.canvas != nil {
		r := st.canvas.Bounds().Add(image.Pt(toolbarWidth, statusHeight))
		drawCheckerboard(dst, r.Intersect(dst.Bounds()), 8, th.CheckerLight, th.CheckerDark)
		if ctx.Err() != nil {
			return
		}
		draw.Draw(dst, r, st.canvas, image.Point{}, draw.Over)
	}
	if ctx.Err() != nil {
		return
	}

	draw.Draw(dst, image.Rect(0, 0, st.width, statusHeight), &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	d.DrawString(st.status)

	drawToolbar(dst, c.toolbar, c.buttons, st.tools, th)

	draw.Draw(dst, image.Rect(0, st.height-bottomHeight, st.width, st.height), &image.Uniform{th.ShortcutBackground}, image.Point{}, draw.Src)
	for i, sc := range layoutShortcuts(th, st.width, st.height, func(string) {}) {
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		md := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
		wmsg := md.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		bg := th.StatusBackground
		bg.A = 230
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
		for i := 0; i < 2; i++ {
			raster.DrawRectangle(dst, rect.Min.X+i, rect.Min.Y+i, rect.Dx()-2*i, rect.Dy()-2*i, th.ButtonBorder, false)
		}
		md.Dot = fixed.P(px, py)
		md.DrawString(st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
