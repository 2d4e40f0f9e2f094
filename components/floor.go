package components

// Floor is a square horizontal platform centred on the vertical axis.
type Floor struct {
	Elevation  float64
	HalfExtent float64
}

// PyramidShape describes how successive floors are laid out.
type PyramidShape struct {
	TopElevation   float64
	ElevationStep  float64 // Drop per floor
	TopHalfExtent  float64
	HalfExtentStep float64 // Growth per floor
	MaxFloors      int
}

// DefaultPyramid is the shape of the reference pyramid: (-5,5), (-7.5,10) ... (-15,25).
var DefaultPyramid = PyramidShape{
	TopElevation:   -5,
	ElevationStep:  2.5,
	TopHalfExtent:  5,
	HalfExtentStep: 5,
	MaxFloors:      10,
}

// Build returns count floors ordered from the top down. The last floor is the kill plane.
// count is clamped to [0, MaxFloors].
func (s PyramidShape) Build(count int) []Floor {
	count = s.Clamp(count)
	floors := make([]Floor, 0, count)
	elevation, extent := s.TopElevation, s.TopHalfExtent
	for i := 0; i < count; i++ {
		floors = append(floors, Floor{Elevation: elevation, HalfExtent: extent})
		elevation -= s.ElevationStep
		extent += s.HalfExtentStep
	}
	return floors
}

// Clamp limits a floor count to the supported range.
func (s PyramidShape) Clamp(count int) int {
	if count < 0 {
		return 0
	}
	if count > s.MaxFloors {
		return s.MaxFloors
	}
	return count
}

// Contains reports whether (x, z) lies strictly inside the footprint grown by margin.
func (f Floor) Contains(x, z, margin float64) bool {
	r := f.HalfExtent + margin
	return x > -r && x < r && z > -r && z < r
}
