// The vis package renders GetRanks results as an HTML chart, as a quick
// diagnostic surface for eyeballing a ranking.
package vis

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/vertex-lab/meritrank/pkg/meritrank"
)

// Labeler turns a NodeID into the label displayed on the chart axis,
// e.g. names.Registry.NameOf wrapped by the caller. A nil Labeler falls
// back to the decimal NodeID.
type Labeler func(score meritrank.Score) string

// RenderScores writes a bar chart of the scores to w.
func RenderScores(w io.Writer, scores []meritrank.Score, title string, label Labeler) error {
	if label == nil {
		label = func(score meritrank.Score) string { return fmt.Sprint(score.Node) }
	}

	labels := make([]string, 0, len(scores))
	bars := make([]opts.BarData, 0, len(scores))
	for _, score := range scores {
		labels = append(labels, label(score))
		bars = append(bars, opts.BarData{Value: score.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}))
	bar.SetXAxis(labels).AddSeries("trust", bars)

	page := components.NewPage()
	page.AddCharts(bar)
	return page.Render(w)
}

// RenderScoresToFile writes the chart to an HTML file at path.
func RenderScoresToFile(path string, scores []meritrank.Score, title string, label Labeler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return RenderScores(f, scores, title, label)
}
