package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"
)

type attempt struct {
	Status   int
	Code     string
	Duration time.Duration
	Err      error
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

// race_probe fires concurrent reservations for one slot against a running deployment and
// fails unless exactly one wins. With -legacy-base it also diffs availability against another deployment.
func main() {
	var (
		base       string
		legacyBase string
		prefix     string
		courtID    string
		date       string
		startTime  string
		tokensRaw  string
		timeout    time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "", "Optional second deployment to diff availability against")
	flag.StringVar(&prefix, "prefix", "/api/v1", "API prefix")
	flag.StringVar(&courtID, "court", "", "Court ID")
	flag.StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	flag.StringVar(&startTime, "start", "", "Slot start time (HH:mm)")
	flag.StringVar(&tokensRaw, "tokens", "", "Comma separated bearer tokens, one request per token")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	tokens := splitTokens(tokensRaw)
	if courtID == "" || date == "" || startTime == "" || len(tokens) < 2 {
		log.Fatal("-court, -date, -start and at least two -tokens are required")
	}

	client := &http.Client{Timeout: timeout}
	availabilityPath := fmt.Sprintf("%s/courts/%s/availability?date=%s", prefix, courtID, date)

	if legacyBase != "" {
		same, err := compareAvailability(client, base, legacyBase, availabilityPath, tokens[0])
		if err != nil {
			log.Fatalf("availability diff failed: %v", err)
		}
		fmt.Printf("availability matches legacy: %t\n", same)
	}

	body, _ := json.Marshal(map[string]string{"date": date, "startTime": startTime})
	reservePath := fmt.Sprintf("%s/courts/%s/reservations", prefix, courtID)

	results := make([]attempt, len(tokens))
	var wg sync.WaitGroup
	gate := make(chan struct{})
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			<-gate
			results[i] = reserve(client, base+reservePath, token, body)
		}(i, token)
	}
	close(gate)
	wg.Wait()

	wins, conflicts, other := 0, 0, 0
	for i, r := range results {
		switch {
		case r.Err != nil:
			other++
			fmt.Printf("#%d error: %v\n", i, r.Err)
		case r.Status == http.StatusCreated:
			wins++
		case r.Status == http.StatusConflict && r.Code == "SLOT_ALREADY_RESERVED":
			conflicts++
		default:
			other++
		}
		fmt.Printf("#%d status=%d code=%s took=%s\n", i, r.Status, r.Code, r.Duration)
	}

	fmt.Printf("Created: %d, Conflicts: %d, Other: %d\n", wins, conflicts, other)
	if wins != 1 || other > 0 {
		os.Exit(1)
	}
}

func splitTokens(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func reserve(client *http.Client, url, token string, body []byte) attempt {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return attempt{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return attempt{Err: err}
	}
	defer resp.Body.Close()

	result := attempt{Status: resp.StatusCode, Duration: time.Since(start)}
	var env envelope
	if raw, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(raw, &env) == nil && env.Error != nil {
		result.Code = env.Error.Code
	}
	return result
}

func compareAvailability(client *http.Client, base, legacyBase, path, token string) (bool, error) {
	current, err := fetch(client, base+path, token)
	if err != nil {
		return false, fmt.Errorf("current: %w", err)
	}
	legacy, err := fetch(client, legacyBase+path, token)
	if err != nil {
		return false, fmt.Errorf("legacy: %w", err)
	}
	return slotsEqual(current, legacy), nil
}

func fetch(client *http.Client, url, token string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// slotsEqual compares the slots arrays, accepting either an enveloped or a bare payload.
func slotsEqual(a, b []byte) bool {
	return reflect.DeepEqual(extractSlots(a), extractSlots(b))
}

func extractSlots(raw []byte) interface{} {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	var payload struct {
		Slots interface{} `json:"slots"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload.Slots
}
