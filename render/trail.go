package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/safevision/ppekit/tracker"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	LineColor     color.RGBA
	LineThickness int
	CircleColor   color.RGBA
	CircleRadius  int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineColor:     Yellow,
		LineThickness: 1,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trails draws the movement trail of each tracked person on the source image
func Trails(img *gocv.Mat, persons []tracker.Person, trail *tracker.Trail,
	style TrailStyle) {

	for _, person := range persons {

		// draw trail line showing tracking history
		points := trail.Points(person.ID)

		if len(points) < 2 {
			continue
		}

		for i := 1; i < len(points); i++ {
			// draw line segment of trail
			gocv.Line(img,
				image.Pt(points[i-1].X, points[i-1].Y),
				image.Pt(points[i].X, points[i].Y),
				style.LineColor, style.LineThickness,
			)
		}

		// draw center point circle on the current position
		last := points[len(points)-1]
		gocv.Circle(img, image.Pt(last.X, last.Y),
			style.CircleRadius, style.CircleColor, -1)
	}
}
