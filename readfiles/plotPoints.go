package readfiles

import (
	"fmt"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/ibtargets/geometry2D"
)

// NewChartPlotHook returns a PlotHook that draws point sets in an avs chart
// window and holds the frame for the given delay.
func NewChartPlotHook(delay time.Duration) PlotHook {
	var (
		chart    *chart2d.Chart2D
		colorMap = utils2.NewColorMap(0, 1, 1)
		count    int
	)
	return func(title string, ps geometry2D.PointSet) (err error) {
		box := geometry2D.NewBoundingBox(ps)
		if box == nil {
			return
		}
		if chart == nil {
			box = box.Scale(1.5)
			chart = chart2d.NewChart2D(1920, 1920,
				float32(box.XMin[0]), float32(box.XMax[0]), float32(box.XMin[1]), float32(box.XMax[1]))
			go chart.Plot()
		}
		X, Y := ps.XY()
		color := colorMap.GetRGB(float32(count%4) / 3)
		count++
		if err = chart.AddSeries(title, X, Y, chart2d.CircleGlyph, chart2d.NoLine, color); err != nil {
			return fmt.Errorf("unable to add graph series %s: %w", title, err)
		}
		time.Sleep(delay)
		return
	}
}
