package geo

import "github.com/UnknownOlympus/wayfinder/internal/models"

// viewportScale is the factor the route bounds are grown by before display.
const viewportScale = 1.2

// PadViewport expands a route's bounding rectangle into a display viewport.
// Width and height grow by 20% and the origin shifts back by a tenth of the
// expanded size, so the whole route stays visible with margin on every side.
func PadViewport(r models.Rect) models.Rect {
	width := r.Width * viewportScale
	height := r.Height * viewportScale

	return models.Rect{
		X:      r.X - width/10,
		Y:      r.Y - height/10,
		Width:  width,
		Height: height,
	}
}
