package aggregators

import (
	"math"
	"sort"
	"time"

	"github.com/vmi98/api-analytics/internal/models"
)

const dayLayout = "2006-01-02"

// buildAggregation computes all six facets from one materialized record set.
// It is a pure function of its input: the same records always produce the
// same result, including ordering of every sequence facet.
//
// Averages and rates are accumulated on the raw values and rounded only once,
// when the result row is built.
func buildAggregation(records []*models.RequestLog) *models.AggregationResult {
	result := models.NewEmptyAggregationResult()
	if len(records) == 0 {
		return result
	}

	type endpointAccumulator struct {
		requests    int64
		totalTime   float64
		errorsCount int64
	}
	type ipAccumulator struct {
		ip       string
		requests int64
	}
	type dayAccumulator struct {
		day         time.Time
		requests    int64
		totalTime   float64
		errorsCount int64
	}

	var (
		totalTime   float64
		errorsCount int64
		minTime     = records[0].ProcessTime
		maxTime     = records[0].ProcessTime
	)
	endpointsByName := make(map[string]*endpointAccumulator)
	ipsByAddress := make(map[string]*ipAccumulator)
	ipsInFirstSeenOrder := make([]*ipAccumulator, 0)
	daysByKey := make(map[string]*dayAccumulator)

	for _, record := range records {
		totalTime += record.ProcessTime
		if record.ProcessTime < minTime {
			minTime = record.ProcessTime
		}
		if record.ProcessTime > maxTime {
			maxTime = record.ProcessTime
		}
		if record.IsError() {
			errorsCount++
		}

		result.MethodUsage[record.Method]++
		result.StatusCodes[record.StatusCode]++

		endpoint := endpointsByName[record.Endpoint]
		if endpoint == nil {
			endpoint = &endpointAccumulator{}
			endpointsByName[record.Endpoint] = endpoint
		}
		endpoint.requests++
		endpoint.totalTime += record.ProcessTime
		if record.IsError() {
			endpoint.errorsCount++
		}

		// Records without a source IP contribute to no IP facet.
		if record.IP != "" {
			ip := ipsByAddress[record.IP]
			if ip == nil {
				ip = &ipAccumulator{ip: record.IP}
				ipsByAddress[record.IP] = ip
				ipsInFirstSeenOrder = append(ipsInFirstSeenOrder, ip)
			}
			ip.requests++
		}

		dayKey := record.Day().Format(dayLayout)
		day := daysByKey[dayKey]
		if day == nil {
			day = &dayAccumulator{day: record.Day()}
			daysByKey[dayKey] = day
		}
		day.requests++
		day.totalTime += record.ProcessTime
		if record.IsError() {
			day.errorsCount++
		}
	}

	totalRequests := int64(len(records))
	result.Summary = models.Summary{
		TotalRequests:   totalRequests,
		UniqueIPs:       int64(len(ipsByAddress)),
		AvgResponseTime: round2(totalTime / float64(totalRequests)),
		MinResponseTime: round2(minTime),
		MaxResponseTime: round2(maxTime),
		// Percentage, one decimal. The per-day series below reports a
		// fraction instead; both scales are kept as-is.
		ErrorRate: round1(float64(errorsCount) / float64(totalRequests) * 100),
	}

	for name, endpoint := range endpointsByName {
		result.EndpointStats = append(result.EndpointStats, models.EndpointStat{
			Endpoint:    name,
			Requests:    endpoint.requests,
			AvgTime:     round2(endpoint.totalTime / float64(endpoint.requests)),
			ErrorsCount: endpoint.errorsCount,
		})
	}
	sort.Slice(result.EndpointStats, func(i, j int) bool {
		left, right := result.EndpointStats[i], result.EndpointStats[j]
		if left.Requests != right.Requests {
			return left.Requests > right.Requests
		}
		return left.Endpoint < right.Endpoint
	})

	// Stable sort on a first-seen-ordered slice: ties keep first-seen order.
	sort.SliceStable(ipsInFirstSeenOrder, func(i, j int) bool {
		return ipsInFirstSeenOrder[i].requests > ipsInFirstSeenOrder[j].requests
	})
	for i, ip := range ipsInFirstSeenOrder {
		if i == topIPLimit {
			break
		}
		result.TopIPs = append(result.TopIPs, models.TopIPEntry{IP: ip.ip, Requests: ip.requests})
	}

	for _, day := range daysByKey {
		result.TimeSeries = append(result.TimeSeries, models.TimeSeriesEntry{
			Timestamp: day.day.Format(dayLayout),
			Requests:  day.requests,
			AvgTime:   round2(day.totalTime / float64(day.requests)),
			ErrorRate: round2(float64(day.errorsCount) / float64(day.requests)),
		})
	}
	sort.Slice(result.TimeSeries, func(i, j int) bool {
		return result.TimeSeries[i].Timestamp < result.TimeSeries[j].Timestamp
	})

	return result
}

const topIPLimit = 5

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
