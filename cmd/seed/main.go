package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/stores"
)

// seed loads request log records from a CSV file into a sqlite store,
// creating the owning API key first when it does not exist yet.
//
// CSV columns: created_at, method, endpoint, ip, process_time, status_code.
// An optional header row is skipped. created_at uses the
// "2006-01-02 15:04:05" layout and is taken as UTC; ip may be empty.
func main() {
	dbPath := flag.String("db", "./data/analytics.db", "sqlite database path")
	clientKey := flag.String("key", "", "client API key to seed under (generated when empty)")
	csvPath := flag.String("csv", "", "CSV file with request log records")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "missing -csv path")
		os.Exit(1)
	}

	if err := run(*dbPath, *clientKey, *csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, clientKey, csvPath string) error {
	ctx := context.Background()

	db, err := stores.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if clientKey == "" {
		clientKey = uuid.NewString()
	}

	apiKeyStore := stores.NewSQLiteAPIKeyStore(db)
	if err := apiKeyStore.Create(ctx, clientKey); err != nil && !errors.Is(err, stores.ErrAPIKeyAlreadyExists) {
		return fmt.Errorf("create api key: %w", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	logStore := stores.NewSQLiteLogStore(db)
	reader := csv.NewReader(file)

	var loaded int
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if line == 1 && len(row) > 0 && row[0] == "created_at" {
			continue
		}

		record, err := parseRow(row, clientKey)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if err := logStore.Append(ctx, record); err != nil {
			return fmt.Errorf("line %d: append: %w", line, err)
		}
		loaded++
	}

	fmt.Printf("loaded %d records under key %s\n", loaded, clientKey)
	return nil
}

func parseRow(row []string, clientKey string) (*models.RequestLog, error) {
	if len(row) != 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	createdAt, err := time.ParseInLocation("2006-01-02 15:04:05", row[0], time.UTC)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}

	method := row[1]
	if !models.IsValidMethod(method) {
		return nil, fmt.Errorf("invalid method %q", method)
	}

	processTime, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return nil, fmt.Errorf("process_time: %w", err)
	}

	statusCode, err := strconv.Atoi(row[5])
	if err != nil {
		return nil, fmt.Errorf("status_code: %w", err)
	}
	if statusCode < models.MinStatusCode || statusCode > models.MaxStatusCode {
		return nil, fmt.Errorf("status_code %d out of range", statusCode)
	}

	return &models.RequestLog{
		ClientKey:   clientKey,
		CreatedAt:   createdAt,
		Method:      method,
		Endpoint:    row[2],
		IP:          row[3],
		ProcessTime: processTime,
		StatusCode:  statusCode,
	}, nil
}
