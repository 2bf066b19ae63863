package app

import (
	"fmt"

	"github.com/dshills/textcore/internal/renderer/core"
)

// render draws the view and the status line and flushes the backend.
func (app *Application) render() {
	if app.backend == nil {
		return
	}
	timer := StartTimer()
	defer func() { app.metrics.RecordFrame(timer.Elapsed()) }()

	app.view.Render(app.backend)
	if app.height > 0 {
		app.renderStatus(app.height - 1)
	}
	app.backend.Show()
}

// statusLeft describes the document and the primary caret.
func (app *Application) statusLeft() string {
	doc := app.doc
	sels := doc.Engine.Selections()
	head := sels[0].Head

	s := " " + doc.Name
	if doc.IsModified() {
		s += " [+]"
	}
	s += fmt.Sprintf("  %d:%d", head.Row+1, head.Col+1)
	if len(sels) > 1 {
		s += fmt.Sprintf("  %d selections", len(sels))
	}
	return s
}

// renderStatus draws the status line on screen row y: document details
// on the left and the last message on the right.
func (app *Application) renderStatus(y int) {
	style := app.view.Theme().Gutter.With(core.AttrReverse)
	width := app.width
	app.backend.Fill(core.ScreenRect{Top: y, Left: 0, Bottom: y + 1, Right: width}, core.NewStyledCell(' ', style))

	x := app.drawText(0, y, width, app.statusLeft(), style)
	msg := app.Status()
	if msg == "" {
		return
	}
	start := max(width-core.StringWidth(msg)-1, x+2)
	app.drawText(start, y, width, msg, style)
}

// drawText draws s from x, clipped at limit, and returns the next x.
func (app *Application) drawText(x, y, limit int, s string, style core.Style) int {
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		app.backend.SetCell(x, y, core.NewStyledCell(r, style))
		if w == 2 {
			app.backend.SetCell(x+1, y, core.ContinuationCell(style))
		}
		x += w
	}
	return x
}
