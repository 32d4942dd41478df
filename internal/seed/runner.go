package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/fermano/TennisPulse/pkg/logger"
)

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusAccepted = 202
)

// Runner configuration constants.
const (
	processingDelay      = 5 * time.Second
	percentageMultiplier = 100
)

// Run executes a complete seeding pass: generate completed-match events,
// submit them, then read the rankings back from the service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("matches", config.NumMatches),
		logger.Int("players", config.NumPlayers),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	events, err := generateEvents(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("event generation failed: %w", err)
	}

	if err := submitEvents(ctx, config, events, stats); err != nil {
		return fmt.Errorf("event submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for events to be processed")
	time.Sleep(processingDelay)

	wins, err := getWinsRanking(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("wins ranking retrieval failed: %w", err)
	}

	performance, err := getPerformanceRanking(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("performance ranking retrieval failed: %w", err)
	}

	if err := verifyResults(events, wins, performance); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	if err := saveEventsToFile(ctx, config, events); err != nil {
		logger.Get().Warn(ctx, "failed to save events to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// getWinsRanking fetches the top N wins ranking entries.
func getWinsRanking(ctx context.Context, config *Config, stats *Stats) ([]WinsEntry, error) {
	log.Printf("getting top %d wins ranking entries", config.TopN)

	body, err := fetchJSON(ctx, config, "/rankings/wins")
	if err != nil {
		return nil, err
	}

	var wins []WinsEntry
	if err := json.Unmarshal(body, &wins); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.WinsRows = len(wins)
	log.Printf("retrieved %d wins ranking entries", len(wins))
	return wins, nil
}

// getPerformanceRanking fetches the top N performance ranking entries.
func getPerformanceRanking(ctx context.Context, config *Config, stats *Stats) ([]PerformanceEntry, error) {
	log.Printf("getting top %d performance ranking entries", config.TopN)

	body, err := fetchJSON(ctx, config, "/rankings/performance")
	if err != nil {
		return nil, err
	}

	var performance []PerformanceEntry
	if err := json.Unmarshal(body, &performance); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.PerformanceRows = len(performance)
	log.Printf("retrieved %d performance ranking entries", len(performance))
	return performance, nil
}

// fetchJSON issues a ranking GET with window and limit query parameters.
func fetchJSON(ctx context.Context, config *Config, path string) ([]byte, error) {
	client := newHTTPClient(config.Timeout)

	query := url.Values{}
	query.Set("window", "ALL_TIME")
	query.Set("limit", strconv.Itoa(config.TopN))
	target := config.BaseURL + path + "?" + query.Encode()

	resp, err := client.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// saveEventsToFile saves the generated events to a JSON file for replay.
func saveEventsToFile(ctx context.Context, config *Config, events []Event) error {
	if len(events) == 0 {
		return fmt.Errorf("no events to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seed_events_" + timestamp + ".json"
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "events saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, eventsPerSecond float64

	if stats.EventsSubmitted > 0 {
		successRate = float64(stats.EventsSuccessful) / float64(stats.EventsSubmitted) * percentageMultiplier
	}

	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("winsRows", stats.WinsRows),
		logger.Int("performanceRows", stats.PerformanceRows),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("eventsPerSecond", eventsPerSecond))
}
