package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// CenterIn returns a widthPx x heightPx rectangle centered within outer.
// The result can exceed outer when the content is larger than the
// region; callers decide whether to clip.
func CenterIn(outer image.Rectangle, widthPx, heightPx int) image.Rectangle {
	outer = Normalize(outer)
	x := outer.Min.X + outer.Dx()/2 - widthPx/2
	y := outer.Min.Y + outer.Dy()/2 - heightPx/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitIn returns the largest rectangle with the aspect ratio of
// srcWidth:srcHeight that fits inside outer, centered. Degenerate
// source dimensions yield outer unchanged.
func FitIn(outer image.Rectangle, srcWidth, srcHeight int) image.Rectangle {
	outer = Normalize(outer)
	if srcWidth <= 0 || srcHeight <= 0 {
		return outer
	}
	scaledW := outer.Dx()
	scaledH := scaledW * srcHeight / srcWidth
	if scaledH > outer.Dy() {
		scaledH = outer.Dy()
		scaledW = scaledH * srcWidth / srcHeight
	}
	return CenterIn(outer, scaledW, scaledH)
}

// Below returns a widthPx x heightPx rectangle centered horizontally on
// anchor and placed marginPx below it.
func Below(anchor image.Rectangle, widthPx, heightPx, marginPx int) image.Rectangle {
	anchor = Normalize(anchor)
	x := anchor.Min.X + anchor.Dx()/2 - widthPx/2
	y := anchor.Max.Y + marginPx
	return image.Rect(x, y, x+widthPx, y+heightPx)
}
