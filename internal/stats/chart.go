package stats

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive line chart of the binned counts, one
// series per module. freq is the frequency as the user wrote it, shown
// verbatim in the title.
func RenderHTML(result *Result, freq string, rangeLabel string, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("模块反馈计数（范围=%s，频率=%s）", rangeLabel, freq),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "时间"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "反馈数量"}),
	)

	labels := make([]string, len(result.Bins))
	for i, bin := range result.Bins {
		labels[i] = bin.Format("2006-01-02 15:04")
	}
	line.SetXAxis(labels)

	for _, module := range result.Modules {
		counts := result.Series[module]
		data := make([]opts.LineData, len(counts))
		for i, count := range counts {
			data[i] = opts.LineData{Value: count}
		}
		line.AddSeries(module, data)
	}

	return line.Render(w)
}
