package model

import "math"

// Tensor is one named model input or output in row-major layout.
type Tensor struct {
	Name string
	Dims []int64
	Data []float32
}

// Rank returns the number of dimensions.
func (t Tensor) Rank() int {
	return len(t.Dims)
}

// ModelOutputs keeps vision model outputs in the order the model declares them.
type ModelOutputs []Tensor

// AttentionGrid is a square grid built from a flat attention tensor.
type AttentionGrid struct {
	Size  int
	Cells []float32
}

// NewAttentionGrid takes floor(sqrt(len(data))) as the grid size. Values
// beyond Size*Size are dropped.
func NewAttentionGrid(data []float32) AttentionGrid {
	size := int(math.Floor(math.Sqrt(float64(len(data)))))
	if size < 1 {
		return AttentionGrid{}
	}
	cells := make([]float32, size*size)
	copy(cells, data[:size*size])
	return AttentionGrid{Size: size, Cells: cells}
}

// IsEmpty reports whether the grid holds no cells.
func (g AttentionGrid) IsEmpty() bool {
	return g.Size < 1
}

// At returns the cell at column x, row y.
func (g AttentionGrid) At(x, y int) float32 {
	return g.Cells[y*g.Size+x]
}
