package readfiles

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/ibtargets/geometry2D"
	"github.com/notargets/ibtargets/types"
)

// Legacy frame correction applied when converting .vertex_OLD files
const (
	OffsetX = 0.0125
	OffsetY = 0.035
)

const (
	LegacyVertexExt = ".vertex_OLD"
	VertexExt       = ".vertex"
)

// PlotHook receives the converted points for visual inspection.
type PlotHook func(title string, ps geometry2D.PointSet) error

type convertConfig struct {
	plot    PlotHook
	verbose bool
}

type ConvertOption func(*convertConfig)

func WithPlot(hook PlotHook) ConvertOption {
	return func(cc *convertConfig) { cc.plot = hook }
}

func WithVerbose(verbose bool) ConvertOption {
	return func(cc *convertConfig) { cc.verbose = verbose }
}

// Convert reads {structureName}.vertex_OLD, applies the legacy offset and
// writes {structureName}.vertex. Nothing is written unless the input parses.
func Convert(structureName string, opts ...ConvertOption) (err error) {
	var (
		cc      = &convertConfig{}
		inFile  = structureName + LegacyVertexExt
		outFile = structureName + VertexExt
		ps      geometry2D.PointSet
	)
	for _, opt := range opts {
		opt(cc)
	}
	if ps, err = ReadVertexOld(inFile); err != nil {
		return
	}
	ps = ps.Translate(geometry2D.NewPoint(OffsetX, OffsetY))
	if cc.verbose {
		fmt.Printf("Read %d points from %s\n", ps.Len(), inFile)
		if box := geometry2D.NewBoundingBox(ps); box != nil {
			fmt.Printf("Bounding Box:\nXMin/XMax = %8.5f, %8.5f\nYMin/YMax = %8.5f, %8.5f\n",
				box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
		}
	}
	if cc.plot != nil {
		if err = cc.plot(structureName, ps); err != nil {
			return
		}
	}
	if err = WriteVertexFile(outFile, ps); err != nil {
		return
	}
	if cc.verbose {
		fmt.Printf("Wrote %d points to %s\n", ps.Len(), outFile)
	}
	return
}

func ReadVertexOld(filename string) (ps geometry2D.PointSet, err error) {
	var (
		file *os.File
	)
	if file, err = openFile(filename); err != nil {
		return
	}
	defer file.Close()
	return ParseVertexOld(file, filename)
}

// ParseVertexOld accepts any run of numeric tokens: the first is the point
// count N and the next 2N are reshaped into (x, y) pairs. Trailing tokens are
// ignored.
func ParseVertexOld(reader io.Reader, filename string) (ps geometry2D.PointSet, err error) {
	var (
		vals []float64
		N    int
	)
	if vals, err = readNumbers(reader, filename); err != nil {
		return
	}
	if len(vals) == 0 {
		return nil, types.NewFileError(types.ErrMalformedInput, filename, 0, "missing point count")
	}
	if N, err = countFromFloat(vals[0], filename); err != nil {
		return
	}
	coords := vals[1:]
	if len(coords) < 2*N {
		return nil, types.NewFileError(types.ErrMalformedInput, filename, 0,
			"point count is %d, found %d coordinate values, need %d", N, len(coords), 2*N)
	}
	ps = make(geometry2D.PointSet, N)
	for i := range ps {
		ps[i] = geometry2D.NewPoint(coords[2*i], coords[2*i+1])
	}
	return
}

// FormatCoordinate renders 16 significant digits in the fixed width layout of
// a C "%1.16e" format, e.g. 1.2500000000000000e-02.
func FormatCoordinate(val float64) string {
	var (
		s = strconv.FormatFloat(val, 'e', 15, 64)
		i = strings.IndexByte(s, 'e')
	)
	if i < 0 { // Inf or NaN
		return s
	}
	return s[:i] + "0" + s[i:]
}

func WriteVertex(writer io.Writer, ps geometry2D.PointSet) (err error) {
	w := bufio.NewWriter(writer)
	if _, err = fmt.Fprintf(w, "%d\n", ps.Len()); err != nil {
		return
	}
	for _, pt := range ps {
		if _, err = fmt.Fprintf(w, "%s %s\n", FormatCoordinate(pt.X[0]), FormatCoordinate(pt.X[1])); err != nil {
			return
		}
	}
	return w.Flush()
}

// WriteVertexFile formats the whole file in memory before touching disk.
func WriteVertexFile(filename string, ps geometry2D.PointSet) (err error) {
	var (
		buf bytes.Buffer
	)
	if err = WriteVertex(&buf, ps); err != nil {
		return
	}
	if err = os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write file %s\n %w", filename, err)
	}
	return
}
