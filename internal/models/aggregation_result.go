package models

// AggregationResult holds the six analytical facets computed from one
// materialized record set. It is ephemeral: recomputed per request, never
// persisted. All numeric fields are already rounded for presentation, so both
// report encodings can consume it verbatim and can never disagree.
//
// Example JSON (the structured report format):
//
//	{
//	  "summary": {
//	    "total_requests": 3,
//	    "unique_ips": 2,
//	    "avg_response_time": 0.2,
//	    "min_response_time": 0.1,
//	    "max_response_time": 0.3,
//	    "error_rate": 33.3
//	  },
//	  "method_usage": {"GET": 2, "POST": 1},
//	  "endpoint_stats": [
//	    {"endpoint": "/a", "requests": 2, "avg_time": 0.2, "errors_count": 1},
//	    {"endpoint": "/b", "requests": 1, "avg_time": 0.2, "errors_count": 0}
//	  ],
//	  "status_codes": {"200": 2, "500": 1},
//	  "top_ips": [{"ip": "ip1", "requests": 2}, {"ip": "ip2", "requests": 1}],
//	  "time_series": [
//	    {"timestamp": "2025-01-01", "requests": 3, "avg_time": 0.2, "error_rate": 0.33}
//	  ]
//	}
type AggregationResult struct {
	Summary       Summary           `json:"summary"`
	MethodUsage   map[string]int64  `json:"method_usage"`
	EndpointStats []EndpointStat    `json:"endpoint_stats"`
	StatusCodes   map[int]int64     `json:"status_codes"`
	TopIPs        []TopIPEntry      `json:"top_ips"`
	TimeSeries    []TimeSeriesEntry `json:"time_series"`
}

// Summary carries whole-set figures. ErrorRate is a percentage rounded to one
// decimal; response times are seconds rounded to two decimals. For an empty
// record set every field is zero (zero, not null, is the documented sentinel).
type Summary struct {
	TotalRequests   int64   `json:"total_requests"`
	UniqueIPs       int64   `json:"unique_ips"`
	AvgResponseTime float64 `json:"avg_response_time"`
	MinResponseTime float64 `json:"min_response_time"`
	MaxResponseTime float64 `json:"max_response_time"`
	ErrorRate       float64 `json:"error_rate"`
}

// EndpointStat is one row of the per-endpoint breakdown, ordered by requests
// descending with endpoint lexical order as tie-break.
type EndpointStat struct {
	Endpoint    string  `json:"endpoint"`
	Requests    int64   `json:"requests"`
	AvgTime     float64 `json:"avg_time"`
	ErrorsCount int64   `json:"errors_count"`
}

// TopIPEntry is one row of the top-5 source IP leaderboard, ordered by
// requests descending with first-seen order as tie-break.
type TopIPEntry struct {
	IP       string `json:"ip"`
	Requests int64  `json:"requests"`
}

// TimeSeriesEntry is one calendar day (UTC) with at least one record.
// Timestamp is the day formatted as 2006-01-02. ErrorRate here is a fraction
// rounded to two decimals, not a percentage; the asymmetry with Summary is
// documented output behavior and is kept.
type TimeSeriesEntry struct {
	Timestamp string  `json:"timestamp"`
	Requests  int64   `json:"requests"`
	AvgTime   float64 `json:"avg_time"`
	ErrorRate float64 `json:"error_rate"`
}

// NewEmptyAggregationResult returns the zero-valued result with all mapping
// and sequence facets allocated, so the structured encoding emits {} and []
// instead of null.
func NewEmptyAggregationResult() *AggregationResult {
	return &AggregationResult{
		MethodUsage:   make(map[string]int64),
		EndpointStats: make([]EndpointStat, 0),
		StatusCodes:   make(map[int]int64),
		TopIPs:        make([]TopIPEntry, 0),
		TimeSeries:    make([]TimeSeriesEntry, 0),
	}
}
