package render

import "image/color"

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}

	// PersonColor outlines person bounding boxes
	PersonColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}

	// CompliantColor and NonCompliantColor paint the per-person info panel
	// depending on the compliance verdict
	CompliantColor    = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	NonCompliantColor = color.RGBA{R: 200, G: 0, B: 0, A: 255}

	// itemColors maps equipment class labels to their box color
	itemColors = map[string]color.RGBA{
		"Hardhat":     {R: 0, G: 255, B: 0, A: 255},
		"Safety Vest": {R: 255, G: 255, B: 0, A: 255},
		"Mask":        {R: 0, G: 255, B: 255, A: 255},
	}

	// itemDefaultColor is used for equipment classes without a dedicated
	// color
	itemDefaultColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// ItemColor returns the box color for an equipment class label
func ItemColor(label string) color.RGBA {
	if clr, ok := itemColors[label]; ok {
		return clr
	}
	return itemDefaultColor
}
