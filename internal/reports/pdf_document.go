package reports

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/vmi98/api-analytics/internal/models"
)

// buildDocument lays out the document report: the summary block, the
// per-endpoint, top-IP and daily tables, then one chart per chartable facet.
// Facets whose chart came back empty are skipped rather than rendered blank.
func buildDocument(result *models.AggregationResult, charts ChartRenderer) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Request Analytics Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Request Analytics Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, result.Summary)
	writeEndpointTable(pdf, result.EndpointStats)
	writeTopIPs(pdf, result.TopIPs)
	writeTimeSeriesTable(pdf, result.TimeSeries)

	methodPie, err := charts.MethodPie(result.MethodUsage)
	if err != nil {
		return nil, err
	}
	if err := writeChart(pdf, "Method Usage", "method_usage", methodPie); err != nil {
		return nil, err
	}

	statusBars, err := charts.StatusBars(result.StatusCodes)
	if err != nil {
		return nil, err
	}
	if err := writeChart(pdf, "Status Codes", "status_codes", statusBars); err != nil {
		return nil, err
	}

	seriesLine, err := charts.TimeSeriesLine(result.TimeSeries)
	if err != nil {
		return nil, err
	}
	if err := writeChart(pdf, "Requests and Error Rate per Day", "time_series", seriesLine); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(pdf *fpdf.Fpdf, summary models.Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	rows := []struct {
		label string
		value string
	}{
		{"Total requests", fmt.Sprintf("%d", summary.TotalRequests)},
		{"Unique IPs", fmt.Sprintf("%d", summary.UniqueIPs)},
		{"Avg response time", fmt.Sprintf("%.2f s", summary.AvgResponseTime)},
		{"Min response time", fmt.Sprintf("%.2f s", summary.MinResponseTime)},
		{"Max response time", fmt.Sprintf("%.2f s", summary.MaxResponseTime)},
		{"Error rate", fmt.Sprintf("%.1f %%", summary.ErrorRate)},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, row.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeEndpointTable(pdf *fpdf.Fpdf, stats []models.EndpointStat) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Endpoints", "", 1, "L", false, 0, "")
	if len(stats) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "no data", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 6, "Endpoint", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Requests", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Avg time", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Errors", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range stats {
		pdf.CellFormat(80, 6, row.Endpoint, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.Requests), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f s", row.AvgTime), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.ErrorsCount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTopIPs(pdf *fpdf.Fpdf, topIPs []models.TopIPEntry) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Top IPs", "", 1, "L", false, 0, "")
	if len(topIPs) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "no data", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range topIPs {
		pdf.CellFormat(80, 6, row.IP, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.Requests), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

// timeSeriesRow formats one calendar day for the daily breakdown table.
// ErrorRate stays the fraction the structured encoding carries.
func timeSeriesRow(entry models.TimeSeriesEntry) [4]string {
	return [4]string{
		entry.Timestamp,
		fmt.Sprintf("%d", entry.Requests),
		fmt.Sprintf("%.2f s", entry.AvgTime),
		fmt.Sprintf("%.2f", entry.ErrorRate),
	}
}

// writeTimeSeriesTable restates the full time-series facet, including the
// per-day error rate. The line chart needs two points to draw; this table
// covers single-day results too.
func writeTimeSeriesTable(pdf *fpdf.Fpdf, series []models.TimeSeriesEntry) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Daily Breakdown", "", 1, "L", false, 0, "")
	if len(series) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, "no data", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, "Requests", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Avg time", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Error rate", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range series {
		row := timeSeriesRow(entry)
		pdf.CellFormat(50, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row[1], "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, row[2], "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, row[3], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeChart(pdf *fpdf.Fpdf, title, name string, png []byte) error {
	if len(png) == 0 {
		return nil
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	options := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(png))
	pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), 160, 0, true, options, 0, "")
	pdf.Ln(4)

	return pdf.Error()
}
