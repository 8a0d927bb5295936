package core

// Size describes the dimensions of a raster surface in pixels.
type Size struct {
	W int
	H int
}

// Point is a sampled cursor position in surface-local pixels together with
// the brush diameter that was active when it was sampled.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter int     `json:"diameter"`
}

// Stroke is a completed press/release record.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}
