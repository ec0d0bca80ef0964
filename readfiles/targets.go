package readfiles

import (
	"fmt"
	"os"

	"github.com/notargets/ibtargets/types"
)

// ReadTargetTable reads a target point file: the point count on the first
// line followed by one "ID x y stiffness" row per point.
func ReadTargetTable(filename string) (tt *types.TargetTable, err error) {
	var (
		file *os.File
		vals []float64
		N    int
	)
	if file, err = openFile(filename); err != nil {
		return
	}
	defer file.Close()
	if vals, err = readNumbers(file, filename); err != nil {
		return
	}
	if len(vals) == 0 {
		return nil, types.NewFileError(types.ErrMalformedInput, filename, 0, "missing point count")
	}
	if N, err = countFromFloat(vals[0], filename); err != nil {
		return
	}
	rec := vals[1:]
	if len(rec) < 4*N {
		return nil, types.NewFileError(types.ErrMalformedInput, filename, 0,
			"point count is %d, found %d values, need %d", N, len(rec), 4*N)
	}
	points := make([]types.TargetPoint, N)
	for i := range points {
		r := rec[4*i : 4*i+4]
		if r[0] != float64(int(r[0])) {
			return nil, types.NewFileError(types.ErrMalformedInput, filename, 0, "target point ID must be an integer, read %v", r[0])
		}
		points[i] = types.TargetPoint{
			ID:        int(r[0]),
			OriginalX: r[1],
			OriginalY: r[2],
			Stiffness: r[3],
		}
	}
	if tt, err = types.NewTargetTable(points); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}
