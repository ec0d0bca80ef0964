package readfiles

import (
	"os"

	"github.com/notargets/ibtargets/geometry2D"
)

// ReadReferencePositions reads rows of "x1 y1 x2 y2", the phase 1 and phase 2
// positions of each target point. Row i belongs to target point ID i+1.
func ReadReferencePositions(filename string) (phase1, phase2 geometry2D.PointSet, err error) {
	var (
		file *os.File
		rows [][]float64
	)
	if file, err = openFile(filename); err != nil {
		return
	}
	defer file.Close()
	if rows, err = readRows(file, filename, 4); err != nil {
		return
	}
	phase1 = make(geometry2D.PointSet, len(rows))
	phase2 = make(geometry2D.PointSet, len(rows))
	for i, row := range rows {
		phase1[i] = geometry2D.NewPoint(row[0], row[1])
		phase2[i] = geometry2D.NewPoint(row[2], row[3])
	}
	return
}
