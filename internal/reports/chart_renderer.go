package reports

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/vmi98/api-analytics/internal/models"
)

const (
	chartWidth  = 512
	chartHeight = 320
)

// ChartRenderer draws the PNG charts embedded in the document report. Each
// method returns nil bytes without error when the facet holds too little data
// to draw anything meaningful; the document builder skips that section.
//
//go:generate mockgen -source=chart_renderer.go -destination=./mocks/chart_renderer_mock.go -package=mocks
type ChartRenderer interface {
	MethodPie(usage map[string]int64) ([]byte, error)
	StatusBars(codes map[int]int64) ([]byte, error)
	TimeSeriesLine(series []models.TimeSeriesEntry) ([]byte, error)
}

type chartRenderer struct{}

func NewChartRenderer() ChartRenderer {
	return &chartRenderer{}
}

func (r *chartRenderer) MethodPie(usage map[string]int64) ([]byte, error) {
	if len(usage) == 0 {
		return nil, nil
	}

	methods := make([]string, 0, len(usage))
	for method := range usage {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	values := make([]chart.Value, 0, len(methods))
	for _, method := range methods {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", method, usage[method]),
			Value: float64(usage[method]),
		})
	}

	pie := chart.PieChart{
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *chartRenderer) StatusBars(codes map[int]int64) ([]byte, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	statusCodes := make([]int, 0, len(codes))
	for code := range codes {
		statusCodes = append(statusCodes, code)
	}
	sort.Ints(statusCodes)

	bars := make([]chart.Value, 0, len(statusCodes))
	for _, code := range statusCodes {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d", code),
			Value: float64(codes[code]),
		})
	}

	barChart := chart.BarChart{
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := barChart.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *chartRenderer) TimeSeriesLine(series []models.TimeSeriesEntry) ([]byte, error) {
	// A line needs at least two points.
	if len(series) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, 0, len(series))
	requestValues := make([]float64, 0, len(series))
	errorRateValues := make([]float64, 0, len(series))
	for _, entry := range series {
		day, err := time.ParseInLocation("2006-01-02", entry.Timestamp, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad time series timestamp %q: %w", entry.Timestamp, err)
		}
		xValues = append(xValues, day)
		requestValues = append(requestValues, float64(entry.Requests))
		errorRateValues = append(errorRateValues, entry.ErrorRate)
	}

	lineChart := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxisSecondary: chart.YAxis{
			ValueFormatter: chart.FloatValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "requests per day",
				XValues: xValues,
				YValues: requestValues,
			},
			chart.TimeSeries{
				Name:    "error rate",
				YAxis:   chart.YAxisSecondary,
				XValues: xValues,
				YValues: errorRateValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := lineChart.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
