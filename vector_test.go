package swen

import "testing"

func TestVectorAdd(t *testing.T) {
	got := Vector{X: 10, Y: 10}.Add(Vector{X: 3, Y: 4})
	if got != (Vector{X: 13, Y: 14}) {
		t.Errorf("Add = %+v, want (13, 14)", got)
	}
}

func TestVectorIsPositive(t *testing.T) {
	tests := []struct {
		v    Vector
		want bool
	}{
		{Vector{1, 1}, true},
		{Vector{0, 1}, false},
		{Vector{1, 0}, false},
		{Vector{-1, 5}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsPositive(); got != tt.want {
			t.Errorf("IsPositive(%+v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		b    Bounds
		want bool
	}{
		{Bounds{5, 5, 10, 10}, true},
		{Bounds{10, 0, 5, 5}, false}, // touching edges do not overlap
		{Bounds{-5, -5, 6, 6}, true},
		{Bounds{20, 20, 5, 5}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	b := Bounds{X: 20, Y: 5, Width: 10, Height: 10}
	got := a.Union(b)
	want := Bounds{X: 0, Y: 0, Width: 30, Height: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if got := a.Union(Bounds{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
}

func TestBoundsContainsTile(t *testing.T) {
	b := Bounds{X: 0, Y: 0, Width: 32, Height: 32}
	if !b.ContainsTile(0, 0) {
		t.Error("32x32 bounds should contain tile (0,0)")
	}
	if !b.ContainsTile(16, 16) {
		t.Error("32x32 bounds should contain tile at pixel (16,16)")
	}
	partial := Bounds{X: 4, Y: 0, Width: 16, Height: 16}
	if partial.ContainsTile(0, 0) {
		t.Error("offset bounds should not contain tile (0,0)")
	}
}
