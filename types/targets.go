package types

import (
	"fmt"
	"sort"
)

// TargetPoint is a Lagrangian marker tethered to a prescribed position by a
// spring of the given stiffness. X, Y hold the current prescribed position.
type TargetPoint struct {
	ID                   int
	OriginalX, OriginalY float64
	Stiffness            float64
	X, Y                 float64
}

// TargetTable holds target points keyed by ID. IDs always form the dense
// range 1..N and Points is stored in ID order, so Points[ID-1] is the point.
type TargetTable struct {
	Points []TargetPoint
	byID   map[int]int
}

// NewTargetTable validates IDs for contiguity and sorts the points into ID
// order. The current position of each point starts at its original position.
func NewTargetTable(points []TargetPoint) (tt *TargetTable, err error) {
	var (
		N      = len(points)
		sorted = make([]TargetPoint, N)
	)
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	tt = &TargetTable{
		Points: sorted,
		byID:   make(map[int]int, N),
	}
	for i := range sorted {
		id := sorted[i].ID
		if _, present := tt.byID[id]; present {
			return nil, fmt.Errorf("%w: duplicate target point ID %d", ErrMalformedInput, id)
		}
		if id != i+1 {
			return nil, fmt.Errorf("%w: target point IDs must be contiguous from 1, expected %d, found %d",
				ErrMalformedInput, i+1, id)
		}
		tt.byID[id] = i
		sorted[i].X, sorted[i].Y = sorted[i].OriginalX, sorted[i].OriginalY
	}
	return
}

func (tt *TargetTable) Len() int { return len(tt.Points) }

// MaxID is the largest ID in the table, equal to Len for a valid table.
func (tt *TargetTable) MaxID() int { return len(tt.Points) }

func (tt *TargetTable) Get(id int) (tp TargetPoint, err error) {
	var (
		ind, ok = tt.byID[id]
	)
	if !ok {
		err = fmt.Errorf("%w: target point ID %d, table holds IDs 1..%d", ErrIndexOutOfRange, id, tt.Len())
		return
	}
	tp = tt.Points[ind]
	return
}

// SetPosition changes the current position only, identity and stiffness are
// fixed at construction.
func (tt *TargetTable) SetPosition(id int, x, y float64) (err error) {
	var (
		ind, ok = tt.byID[id]
	)
	if !ok {
		return fmt.Errorf("%w: target point ID %d, table holds IDs 1..%d", ErrIndexOutOfRange, id, tt.Len())
	}
	tt.Points[ind].X, tt.Points[ind].Y = x, y
	return
}

func (tt *TargetTable) Clone() (cp *TargetTable) {
	cp = &TargetTable{
		Points: make([]TargetPoint, len(tt.Points)),
		byID:   make(map[int]int, len(tt.byID)),
	}
	copy(cp.Points, tt.Points)
	for k, v := range tt.byID {
		cp.byID[k] = v
	}
	return
}

// Positions returns the current X and Y columns in ID order.
func (tt *TargetTable) Positions() (X, Y []float64) {
	X, Y = make([]float64, tt.Len()), make([]float64, tt.Len())
	for i, tp := range tt.Points {
		X[i], Y[i] = tp.X, tp.Y
	}
	return
}
