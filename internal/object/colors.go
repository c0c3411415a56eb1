package object

import "image/color"

// Named colors shared by entities and presenters.
var (
	White  = color.RGBA{255, 255, 255, 255}
	Black  = color.RGBA{0, 0, 0, 255}
	Cyan   = color.RGBA{0, 255, 255, 255}
	Green  = color.RGBA{50, 205, 50, 255}
	Red    = color.RGBA{255, 69, 0, 255}
	Purple = color.RGBA{138, 43, 226, 255}
	Gold   = color.RGBA{255, 215, 0, 255}
	Blue   = color.RGBA{100, 149, 237, 255}
	Pink   = color.RGBA{255, 20, 147, 255}
	Orange = color.RGBA{255, 165, 0, 255}
)
