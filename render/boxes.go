// Package render draws detection and compliance results onto video frames
// for display or encoding.  It consumes the pipeline's plain output data and
// never feeds anything back into it.
package render

import (
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/ppe"
	"github.com/safevision/ppekit/tracker"
)

// infoPanelWidth is the pixel width of the per-person info panel
const infoPanelWidth = 200

// ItemBoxes renders the bounding boxes around detected equipment items with
// a class and confidence label
func ItemBoxes(img *gocv.Mat, items []detect.Detection, font Font,
	lineThickness int) {

	for _, item := range items {

		useClr := ItemColor(item.Label)

		rect := image.Rect(int(item.Box.X1), int(item.Box.Y1),
			int(item.Box.X2), int(item.Box.Y2))
		gocv.Rectangle(img, rect, useClr, lineThickness)

		text := fmt.Sprintf("%s %.2f", item.Label, item.Confidence)

		gocv.PutTextWithParams(img, text,
			image.Pt(int(item.Box.X1), int(item.Box.Y1)-10),
			font.Face, font.Scale, useClr, font.Thickness,
			font.LineType, false)
	}
}

// PersonBoxes renders each tracked person's bounding box together with an
// info panel showing their track ID, compliance score and assigned items.
// The panel is painted green when the score meets the compliance threshold
// and red otherwise.
func PersonBoxes(img *gocv.Mat, persons []tracker.Person,
	assigned ppe.Assignment, scores ppe.ScoreMap, complianceThreshold int,
	font Font, lineThickness int) {

	for _, person := range persons {

		boxLeft := int(person.Det.Box.X1)
		boxTop := int(person.Det.Box.Y1)
		boxRight := int(person.Det.Box.X2)
		boxBottom := int(person.Det.Box.Y2)

		score := scores[person.ID]

		panelClr := NonCompliantColor
		if ppe.Compliant(score, complianceThreshold) {
			panelClr = CompliantColor
		}

		// person bounding box
		rect := image.Rect(boxLeft, boxTop, boxRight, boxBottom)
		gocv.Rectangle(img, rect, PersonColor, lineThickness)

		// place the panel above the box, or below it when too close to
		// the frame top
		infoY := boxTop - 10
		if boxTop <= 30 {
			infoY = boxBottom + 20
		}

		panel := image.Rect(boxLeft-1, infoY-20,
			boxLeft+infoPanelWidth, infoY+60)
		gocv.Rectangle(img, panel, panelClr, -1)

		gocv.PutTextWithParams(img, fmt.Sprintf("ID: %d", person.ID),
			image.Pt(boxLeft, infoY),
			font.Face, 0.6, font.Color, font.Thickness,
			font.LineType, false)

		gocv.PutTextWithParams(img, fmt.Sprintf("PPE: %d%%", score),
			image.Pt(boxLeft, infoY+20),
			font.Face, 0.6, font.Color, font.Thickness,
			font.LineType, false)

		gocv.PutTextWithParams(img, "Items: "+itemList(assigned[person.ID]),
			image.Pt(boxLeft, infoY+40),
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// itemList formats the class labels of a person's assigned equipment
func itemList(items []detect.Detection) string {

	if len(items) == 0 {
		return "None"
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}

	return strings.Join(labels, ", ")
}
