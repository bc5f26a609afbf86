package ui

import (
	"math"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// One terminal cell covers cellWorldW x cellWorldH world units at zoom 1.
// Cells are roughly twice as tall as they are wide, so the ratio keeps the
// layout's proportions.
const (
	cellWorldW = 8.0
	cellWorldH = 16.0

	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 1.25

	panCells  = 4
	fitMargin = 2
)

// Camera maps world coordinates onto canvas cells. (X, Y) is the world
// point shown at the canvas origin.
type Camera struct {
	X, Y float64
	Zoom float64
}

// DefaultCamera shows the world origin at zoom 1.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// Project converts a world position to a cell column and row.
func (c Camera) Project(p model.Position) (col, row int) {
	return int(math.Round((p.X - c.X) * c.Zoom / cellWorldW)),
		int(math.Round((p.Y - c.Y) * c.Zoom / cellWorldH))
}

// Unproject converts a cell back to the world position at its top-left.
func (c Camera) Unproject(col, row int) model.Position {
	return model.Position{
		X: c.X + float64(col)*cellWorldW/c.Zoom,
		Y: c.Y + float64(row)*cellWorldH/c.Zoom,
	}
}

// CellDelta converts a cell offset into world units at the current zoom.
func (c Camera) CellDelta(dcols, drows int) (dx, dy float64) {
	return float64(dcols) * cellWorldW / c.Zoom, float64(drows) * cellWorldH / c.Zoom
}

// Pan scrolls the view by a number of cells.
func (c *Camera) Pan(dcols, drows int) {
	dx, dy := c.CellDelta(dcols, drows)
	c.X += dx
	c.Y += dy
}

// ZoomAt scales by factor while keeping the world point under (col, row)
// fixed on screen.
func (c *Camera) ZoomAt(factor float64, col, row int) {
	anchor := c.Unproject(col, row)
	c.Zoom = clampZoom(c.Zoom * factor)
	c.X = anchor.X - float64(col)*cellWorldW/c.Zoom
	c.Y = anchor.Y - float64(row)*cellWorldH/c.Zoom
}

// CenterOn moves the camera so p sits in the middle of a w x h canvas.
func (c *Camera) CenterOn(p model.Position, w, h int) {
	c.X = p.X - float64(w)/2*cellWorldW/c.Zoom
	c.Y = p.Y - float64(h)/2*cellWorldH/c.Zoom
}

func clampZoom(z float64) float64 {
	return math.Max(minZoom, math.Min(maxZoom, z))
}

// FitCamera picks the zoom and offset that show every node of g inside a
// w x h canvas. Node boxes keep a fixed cell size, so boxW and boxH are
// subtracted from the space available to positions.
func FitCamera(g model.Graph, w, h, boxW, boxH int) Camera {
	cam := DefaultCamera()
	if len(g.Nodes) == 0 || w <= 0 || h <= 0 {
		return cam
	}
	lo, hi := g.Bounds()
	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y

	availW := float64(w - boxW - 2*fitMargin)
	availH := float64(h - boxH - 2*fitMargin)

	zoom := maxZoom
	if spanX > 0 {
		zoom = math.Min(zoom, availW*cellWorldW/spanX)
	}
	if spanY > 0 {
		zoom = math.Min(zoom, availH*cellWorldH/spanY)
	}
	cam.Zoom = clampZoom(zoom)

	usedW := spanX*cam.Zoom/cellWorldW + float64(boxW)
	usedH := spanY*cam.Zoom/cellWorldH + float64(boxH)
	cam.X = lo.X - (float64(w)-usedW)/2*cellWorldW/cam.Zoom
	cam.Y = lo.Y - (float64(h)-usedH)/2*cellWorldH/cam.Zoom
	return cam
}
