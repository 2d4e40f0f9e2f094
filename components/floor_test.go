package components

import "testing"

func TestPyramidBuild(t *testing.T) {
	floors := DefaultPyramid.Build(5)

	want := []Floor{
		{-5, 5},
		{-7.5, 10},
		{-10, 15},
		{-12.5, 20},
		{-15, 25},
	}
	if len(floors) != len(want) {
		t.Fatalf("got %d floors, want %d", len(floors), len(want))
	}
	for i := range want {
		if floors[i] != want[i] {
			t.Errorf("floor %d = %+v, want %+v", i, floors[i], want[i])
		}
	}
}

func TestPyramidClamp(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{3, 3},
		{10, 10},
		{11, 10},
	}
	for _, tt := range tests {
		if got := len(DefaultPyramid.Build(tt.count)); got != tt.want {
			t.Errorf("Build(%d) has %d floors, want %d", tt.count, got, tt.want)
		}
	}
}

func TestFloorContains(t *testing.T) {
	f := Floor{Elevation: -5, HalfExtent: 5}

	tests := []struct {
		name   string
		x, z   float64
		margin float64
		want   bool
	}{
		{"centre", 0, 0, 0, true},
		{"inside corner", 4.9, -4.9, 0, true},
		{"on edge", 5, 0, 0, false},
		{"edge within margin", 5, 0, 1.25, true},
		{"outside margin", 6.25, 0, 1.25, false},
		{"far away", 100, 100, 1.25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Contains(tt.x, tt.z, tt.margin); got != tt.want {
				t.Errorf("Contains(%v, %v, %v) = %v, want %v", tt.x, tt.z, tt.margin, got, tt.want)
			}
		})
	}
}
