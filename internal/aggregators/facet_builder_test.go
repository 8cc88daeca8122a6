package aggregators

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmi98/api-analytics/internal/models"
)

func logAt(day int, method, endpoint, ip string, processTime float64, status int) *models.RequestLog {
	return &models.RequestLog{
		CreatedAt:   time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC),
		Method:      method,
		Endpoint:    endpoint,
		IP:          ip,
		ProcessTime: processTime,
		StatusCode:  status,
	}
}

func TestBuildAggregation_EmptySet(t *testing.T) {
	result := buildAggregation(nil)

	assert.Equal(t, models.Summary{}, result.Summary)
	assert.Empty(t, result.MethodUsage)
	assert.Empty(t, result.EndpointStats)
	assert.Empty(t, result.StatusCodes)
	assert.Empty(t, result.TopIPs)
	assert.Empty(t, result.TimeSeries)

	// Mapping and sequence facets must encode as {} and [], never null.
	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "null")
}

func TestBuildAggregation_ThreeRecordScenario(t *testing.T) {
	records := []*models.RequestLog{
		logAt(1, "GET", "/a", "ip1", 0.1, 200),
		logAt(1, "GET", "/a", "ip1", 0.3, 500),
		logAt(1, "POST", "/b", "ip2", 0.2, 200),
	}

	result := buildAggregation(records)

	assert.Equal(t, models.Summary{
		TotalRequests:   3,
		UniqueIPs:       2,
		AvgResponseTime: 0.2,
		MinResponseTime: 0.1,
		MaxResponseTime: 0.3,
		ErrorRate:       33.3,
	}, result.Summary)

	assert.Equal(t, map[string]int64{"GET": 2, "POST": 1}, result.MethodUsage)
	assert.Equal(t, map[int]int64{200: 2, 500: 1}, result.StatusCodes)

	assert.Equal(t, []models.EndpointStat{
		{Endpoint: "/a", Requests: 2, AvgTime: 0.2, ErrorsCount: 1},
		{Endpoint: "/b", Requests: 1, AvgTime: 0.2, ErrorsCount: 0},
	}, result.EndpointStats)

	assert.Equal(t, []models.TopIPEntry{
		{IP: "ip1", Requests: 2},
		{IP: "ip2", Requests: 1},
	}, result.TopIPs)

	require.Len(t, result.TimeSeries, 1)
	assert.Equal(t, models.TimeSeriesEntry{
		Timestamp: "2025-01-01",
		Requests:  3,
		AvgTime:   0.2,
		ErrorRate: 0.33,
	}, result.TimeSeries[0])
}

func TestBuildAggregation_SumInvariants(t *testing.T) {
	records := []*models.RequestLog{
		logAt(1, "GET", "/a", "ip1", 0.11, 200),
		logAt(1, "POST", "/a", "ip2", 0.22, 201),
		logAt(2, "PUT", "/b", "ip1", 0.33, 404),
		logAt(2, "DELETE", "/c", "", 0.44, 500),
		logAt(3, "GET", "/b", "ip3", 0.55, 200),
	}

	result := buildAggregation(records)
	total := result.Summary.TotalRequests

	var methodSum, statusSum, endpointSum, seriesSum int64
	for _, n := range result.MethodUsage {
		methodSum += n
	}
	for _, n := range result.StatusCodes {
		statusSum += n
	}
	for _, row := range result.EndpointStats {
		endpointSum += row.Requests
	}
	for _, row := range result.TimeSeries {
		seriesSum += row.Requests
	}

	assert.Equal(t, total, methodSum)
	assert.Equal(t, total, statusSum)
	assert.Equal(t, total, endpointSum)
	assert.Equal(t, total, seriesSum)

	// The IP-less record counts everywhere except the IP facets.
	assert.Equal(t, int64(3), result.Summary.UniqueIPs)
	var ipSum int64
	for _, row := range result.TopIPs {
		ipSum += row.Requests
	}
	assert.Equal(t, int64(4), ipSum)
}

func TestBuildAggregation_TopIPTruncationAndTieBreak(t *testing.T) {
	counts := []int64{50, 40, 30, 20, 10, 5, 1}
	var records []*models.RequestLog
	for i, n := range counts {
		ip := fmt.Sprintf("10.0.0.%d", i+1)
		for j := int64(0); j < n; j++ {
			records = append(records, logAt(1, "GET", "/a", ip, 0.1, 200))
		}
	}

	result := buildAggregation(records)

	require.Len(t, result.TopIPs, 5)
	assert.Equal(t, []models.TopIPEntry{
		{IP: "10.0.0.1", Requests: 50},
		{IP: "10.0.0.2", Requests: 40},
		{IP: "10.0.0.3", Requests: 30},
		{IP: "10.0.0.4", Requests: 20},
		{IP: "10.0.0.5", Requests: 10},
	}, result.TopIPs)

	// Ties rank by first appearance in insertion order.
	tied := []*models.RequestLog{
		logAt(1, "GET", "/a", "ipB", 0.1, 200),
		logAt(1, "GET", "/a", "ipA", 0.1, 200),
	}
	tiedResult := buildAggregation(tied)
	assert.Equal(t, []models.TopIPEntry{
		{IP: "ipB", Requests: 1},
		{IP: "ipA", Requests: 1},
	}, tiedResult.TopIPs)
}

func TestBuildAggregation_EndpointTieBreakIsLexical(t *testing.T) {
	records := []*models.RequestLog{
		logAt(1, "GET", "/zebra", "ip1", 0.1, 200),
		logAt(1, "GET", "/alpha", "ip1", 0.1, 200),
	}

	result := buildAggregation(records)

	require.Len(t, result.EndpointStats, 2)
	assert.Equal(t, "/alpha", result.EndpointStats[0].Endpoint)
	assert.Equal(t, "/zebra", result.EndpointStats[1].Endpoint)
}

func TestBuildAggregation_TimeSeriesAscendingDays(t *testing.T) {
	records := []*models.RequestLog{
		logAt(3, "GET", "/a", "ip1", 0.1, 200),
		logAt(1, "GET", "/a", "ip1", 0.1, 500),
		logAt(3, "GET", "/a", "ip1", 0.1, 200),
	}

	result := buildAggregation(records)

	require.Len(t, result.TimeSeries, 2)
	assert.Equal(t, "2025-01-01", result.TimeSeries[0].Timestamp)
	assert.Equal(t, "2025-01-03", result.TimeSeries[1].Timestamp)
	assert.Equal(t, int64(1), result.TimeSeries[0].Requests)
	assert.Equal(t, 1.0, result.TimeSeries[0].ErrorRate)
	assert.Equal(t, int64(2), result.TimeSeries[1].Requests)
	assert.Equal(t, 0.0, result.TimeSeries[1].ErrorRate)
}

func TestBuildAggregation_Deterministic(t *testing.T) {
	records := []*models.RequestLog{
		logAt(1, "GET", "/a", "ip1", 0.123, 200),
		logAt(2, "POST", "/b", "ip2", 0.456, 404),
		logAt(2, "GET", "/a", "ip1", 0.789, 500),
	}

	first, err := json.Marshal(buildAggregation(records))
	require.NoError(t, err)
	second, err := json.Marshal(buildAggregation(records))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
