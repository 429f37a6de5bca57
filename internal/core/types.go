package core

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}
