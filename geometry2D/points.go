package geometry2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (pt Point) Minus(rhs Point) (res Point) {
	return Point{X: [2]float64{
		pt.X[0] - rhs.X[0],
		pt.X[1] - rhs.X[1],
	}}
}
func (pt Point) Plus(rhs Point) (res Point) {
	return Point{X: [2]float64{
		pt.X[0] + rhs.X[0],
		pt.X[1] + rhs.X[1],
	}}
}
func (pt Point) Scale(a float64) (res Point) {
	return Point{X: [2]float64{
		a * pt.X[0],
		a * pt.X[1],
	}}
}
func (pt Point) Equal(rhs Point) bool {
	return pt.X[0] == rhs.X[0] && pt.X[1] == rhs.X[1]
}

// PointSet is an ordered list of 2D points, position in the list is identity.
type PointSet []Point

func NewPointSetXY(X, Y []float64) (ps PointSet, err error) {
	if len(X) != len(Y) {
		err = fmt.Errorf("coordinate length mismatch, len(X) = %d, len(Y) = %d", len(X), len(Y))
		return
	}
	ps = make(PointSet, len(X))
	for i := range X {
		ps[i] = NewPoint(X[i], Y[i])
	}
	return
}

func (ps PointSet) Len() int { return len(ps) }

// Translate returns a shifted copy, the receiver is left untouched.
func (ps PointSet) Translate(offset Point) (psOut PointSet) {
	psOut = make(PointSet, len(ps))
	for i, pt := range ps {
		psOut[i] = pt.Plus(offset)
	}
	return
}

func (ps PointSet) XY() (X, Y []float64) {
	X, Y = make([]float64, len(ps)), make([]float64, len(ps))
	for i, pt := range ps {
		X[i], Y[i] = pt.X[0], pt.X[1]
	}
	return
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(ps PointSet) (Box *BoundingBox) {
	if len(ps) == 0 {
		return nil
	}
	X, Y := ps.XY()
	Box = &BoundingBox{
		XMin: [2]float64{floats.Min(X), floats.Min(Y)},
		XMax: [2]float64{floats.Max(X), floats.Max(Y)},
	}
	return
}

func (bb *BoundingBox) Centroid() (centroid Point) {
	return Point{X: [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}}
}

func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	bbOut = new(BoundingBox)
	for i := 0; i < 2; i++ {
		xRange := bb.XMax[i] - bb.XMin[i]
		centroid := bb.XMin[i] + 0.5*xRange
		bbOut.XMin[i] = scale*(bb.XMin[i]-centroid) + centroid
		bbOut.XMax[i] = scale*(bb.XMax[i]-centroid) + centroid
	}
	return bbOut
}

func (bb *BoundingBox) Translate(panX Point) (bbOut *BoundingBox) {
	bbOut = new(BoundingBox)
	for i := 0; i < 2; i++ {
		bbOut.XMin[i] = bb.XMin[i] + panX.X[i]
		bbOut.XMax[i] = bb.XMax[i] + panX.X[i]
	}
	return bbOut
}

func (bb *BoundingBox) PointInside(point Point) (within bool) {
	for ii := 0; ii < 2; ii++ {
		if point.X[ii] > bb.XMax[ii] || point.X[ii] < bb.XMin[ii] {
			return false
		}
	}
	return true
}
