package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalRequests = 6000 // Total number of tracked requests to generate
)

var (
	days      = []string{"2025-03-01", "2025-03-02", "2025-03-03"}
	endpoints = []string{"/api/users", "/api/orders", "/api/items", "/health"}
	methods   = []string{"GET", "POST", "PUT", "DELETE"}
	sourceIPs = []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5", "10.0.0.6"}
)

// ### End - fixed configs

type trackPayload struct {
	CreatedAt   string  `json:"created_at"`
	Method      string  `json:"method"`
	Endpoint    string  `json:"endpoint"`
	IP          string  `json:"ip"`
	ProcessTime float64 `json:"process_time"`
	StatusCode  int     `json:"status_code"`
}

type dashboardResponse struct {
	Summary struct {
		TotalRequests int64   `json:"total_requests"`
		UniqueIPs     int64   `json:"unique_ips"`
		ErrorRate     float64 `json:"error_rate"`
	} `json:"summary"`
	MethodUsage   map[string]int64 `json:"method_usage"`
	StatusCodes   map[string]int64 `json:"status_codes"`
	EndpointStats []struct {
		Endpoint string `json:"endpoint"`
		Requests int64  `json:"requests"`
	} `json:"endpoint_stats"`
	TopIPs []struct {
		IP       string `json:"ip"`
		Requests int64  `json:"requests"`
	} `json:"top_ips"`
	TimeSeries []struct {
		Timestamp string `json:"timestamp"`
		Requests  int64  `json:"requests"`
	} `json:"time_series"`
}

// main runs the e2e scenario: 001_dashboard_facets
//
// This scenario tests the end-to-end flow of key issuance, asynchronous
// request tracking, and facet aggregation. It issues a fresh API key, tracks
// 6,000 deterministic requests in parallel, then polls GET /dashboard until
// the aggregation converges.
//
// What it tests:
//   - API key issuance via POST /generate_key
//   - Observation ingestion via POST /track (202 acknowledgement)
//   - Eventual visibility of asynchronously appended records
//   - Facet sum invariants: method usage, status codes and endpoint stats
//     each add up to the summary's total_requests
//   - Top IP leaderboard truncation to five entries
//   - Calendar-day time series in ascending order
//   - Raw log pagination via GET /raw_logs
//   - Report export via POST /report/export
//
// Expected results:
//   - summary.total_requests == 6000 after convergence
//   - summary.unique_ips == 6, top_ips has exactly 5 entries
//   - time_series covers the three seeded days in ascending order
//   - GET /raw_logs with limit=100 returns count 6000 and 100 rows
//   - POST /report/export returns a file key under the issued client key
//   - GET /report/export/{file} serves the exported report back
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the api-analytics server
	parallel := 8                      // Number of concurrent track requests
	convergeTimeout := 60 * time.Second

	fmt.Println("Starting e2e scenario: 001_dashboard_facets")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_REQUESTS: %d\n", totalRequests)
	fmt.Println()

	client := &http.Client{Timeout: 30 * time.Second}

	// 1) Issue a fresh API key
	apiKey, err := generateKey(client, baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to generate key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Issued API key: %s\n", apiKey)
	fmt.Println()

	// 2) Track all requests in parallel
	fmt.Printf("Tracking %d requests...\n", totalRequests)
	payloads := generatePayloads()

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var sendErrors []error

	for i, payload := range payloads {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(index int, p trackPayload) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			if err := track(client, baseURL, apiKey, p); err != nil {
				mu.Lock()
				sendErrors = append(sendErrors, fmt.Errorf("request %d: %w", index, err))
				mu.Unlock()
			}
		}(i, payload)
	}
	wg.Wait()

	if len(sendErrors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d track requests failed (first: %v)\n", len(sendErrors), sendErrors[0])
		os.Exit(1)
	}
	fmt.Println("All track requests acknowledged")
	fmt.Println()

	// 3) Poll the dashboard until the async ingestion converges
	fmt.Println("Waiting for aggregation to converge...")
	dashboard, err := waitForDashboard(client, baseURL, apiKey, convergeTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Converged: total_requests=%d\n", dashboard.Summary.TotalRequests)
	fmt.Println()

	// 4) Verify facet invariants
	failures := verifyDashboard(dashboard)

	// 5) Raw logs pagination
	if err := verifyRawLogs(client, baseURL, apiKey); err != nil {
		failures = append(failures, err.Error())
	}

	// 6) Report export
	if err := verifyExport(client, baseURL, apiKey); err != nil {
		failures = append(failures, err.Error())
	}

	fmt.Println("=== Results ===")
	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", failure)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

// generatePayloads produces totalRequests deterministic observations spread
// over the fixed days, endpoints, methods and IPs. Every 10th request is a
// server error so the expected error rate is exactly 10 percent.
func generatePayloads() []trackPayload {
	payloads := make([]trackPayload, 0, totalRequests)
	for i := 0; i < totalRequests; i++ {
		day := days[i%len(days)]
		statusCode := 200
		if i%10 == 0 {
			statusCode = 500
		}
		payloads = append(payloads, trackPayload{
			CreatedAt:   fmt.Sprintf("%sT%02d:%02d:%02dZ", day, 8+(i%12), i%60, (i*7)%60),
			Method:      methods[i%len(methods)],
			Endpoint:    endpoints[i%len(endpoints)],
			IP:          sourceIPs[i%len(sourceIPs)],
			ProcessTime: 0.05 + float64(i%20)*0.01,
			StatusCode:  statusCode,
		})
	}
	return payloads
}

func generateKey(client *http.Client, baseURL string) (string, error) {
	resp, err := client.Post(baseURL+"/generate_key", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body["api_key"] == "" {
		return "", fmt.Errorf("empty api_key in response")
	}
	return body["api_key"], nil
}

func track(client *http.Client, baseURL, apiKey string, payload trackPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/track", bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func waitForDashboard(client *http.Client, baseURL, apiKey string, timeout time.Duration) (*dashboardResponse, error) {
	deadline := time.Now().Add(timeout)
	for {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/dashboard", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-api-key", apiKey)

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}

		var dashboard dashboardResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&dashboard)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, decodeErr
		}

		if resp.StatusCode == http.StatusOK && dashboard.Summary.TotalRequests == totalRequests {
			return &dashboard, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("dashboard did not converge: total_requests=%d, want %d",
				dashboard.Summary.TotalRequests, totalRequests)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func verifyDashboard(dashboard *dashboardResponse) []string {
	var failures []string

	if dashboard.Summary.UniqueIPs != int64(len(sourceIPs)) {
		failures = append(failures, fmt.Sprintf("unique_ips = %d, want %d", dashboard.Summary.UniqueIPs, len(sourceIPs)))
	}
	if dashboard.Summary.ErrorRate != 10.0 {
		failures = append(failures, fmt.Sprintf("error_rate = %v, want 10", dashboard.Summary.ErrorRate))
	}

	var methodSum, statusSum, endpointSum, seriesSum int64
	for _, n := range dashboard.MethodUsage {
		methodSum += n
	}
	for _, n := range dashboard.StatusCodes {
		statusSum += n
	}
	for _, row := range dashboard.EndpointStats {
		endpointSum += row.Requests
	}
	for _, row := range dashboard.TimeSeries {
		seriesSum += row.Requests
	}
	for name, sum := range map[string]int64{
		"method_usage":   methodSum,
		"status_codes":   statusSum,
		"endpoint_stats": endpointSum,
		"time_series":    seriesSum,
	} {
		if sum != totalRequests {
			failures = append(failures, fmt.Sprintf("%s sums to %d, want %d", name, sum, totalRequests))
		}
	}

	if len(dashboard.TopIPs) != 5 {
		failures = append(failures, fmt.Sprintf("top_ips has %d entries, want 5", len(dashboard.TopIPs)))
	}

	if len(dashboard.TimeSeries) != len(days) {
		failures = append(failures, fmt.Sprintf("time_series has %d days, want %d", len(dashboard.TimeSeries), len(days)))
	}
	for i := 1; i < len(dashboard.TimeSeries); i++ {
		if dashboard.TimeSeries[i-1].Timestamp >= dashboard.TimeSeries[i].Timestamp {
			failures = append(failures, "time_series is not in ascending day order")
			break
		}
	}

	return failures
}

func verifyRawLogs(client *http.Client, baseURL, apiKey string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/raw_logs?limit=100&sort_by=date&sort_dir=asc", nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("raw_logs: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Count int               `json:"count"`
		Logs  []json.RawMessage `json:"logs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.Count != totalRequests {
		return fmt.Errorf("raw_logs count = %d, want %d", body.Count, totalRequests)
	}
	if len(body.Logs) != 100 {
		return fmt.Errorf("raw_logs page size = %d, want 100", len(body.Logs))
	}
	return nil
}

func verifyExport(client *http.Client, baseURL, apiKey string) error {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/report/export?format=json", nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("report/export: HTTP %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	fileKey := body["file_key"]
	if fileKey == "" {
		return fmt.Errorf("report/export returned empty file_key")
	}

	// Fetch the export back through the download route. The path carries only
	// the file name; the server scopes the lookup to the api key.
	fileName := fileKey[strings.LastIndex(fileKey, "/")+1:]
	dlReq, err := http.NewRequest(http.MethodGet, baseURL+"/report/export/"+fileName, nil)
	if err != nil {
		return err
	}
	dlReq.Header.Set("x-api-key", apiKey)

	dlResp, err := client.Do(dlReq)
	if err != nil {
		return err
	}
	defer dlResp.Body.Close()
	if dlResp.StatusCode != http.StatusOK {
		return fmt.Errorf("report/export/%s: HTTP %d", fileName, dlResp.StatusCode)
	}

	var exported struct {
		Summary struct {
			TotalRequests int64 `json:"total_requests"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(dlResp.Body).Decode(&exported); err != nil {
		return err
	}
	if exported.Summary.TotalRequests != totalRequests {
		return fmt.Errorf("downloaded report total_requests = %d, want %d",
			exported.Summary.TotalRequests, totalRequests)
	}
	return nil
}
