package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/foxowl-ops/digital-twin/internal/gateway"
	"github.com/foxowl-ops/digital-twin/internal/logger"
)

var (
	currencies = []string{"USD", "EUR", "GBP"}
	gateways   = []string{"Visa", "Mastercard", "PayPal", "Stripe"}
)

// outcome is the per-payment result collected by a worker.
type outcome struct {
	result  gateway.Result
	elapsed time.Duration
	err     error
}

func main() {
	var (
		addr      = flag.String("addr", "http://localhost:8080", "base URL of the payment gateway API")
		total     = flag.Int("n", 50, "number of payments to submit")
		workers   = flag.Int("concurrency", 10, "number of concurrent submitters")
		maxAmount = flag.Float64("max-amount", 1200, "upper bound for drawn amounts")
	)
	flag.Parse()

	log := logger.New()

	client := &http.Client{Timeout: 60 * time.Second}

	requests := make(chan gateway.Request)
	outcomes := make(chan outcome, *total)

	// Bounded worker pool: each worker keeps one payment in flight, so up to
	// -concurrency requests wait out their simulated latency at once.
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range requests {
				outcomes <- submit(client, *addr, req)
			}
		}()
	}

	log.Info().
		Int("payments", *total).
		Int("concurrency", *workers).
		Str("addr", *addr).
		Msg("Starting load run")

	start := time.Now()
	for i := 0; i < *total; i++ {
		requests <- gateway.Request{
			UserID:         fmt.Sprintf("user-%03d", i%20),
			Amount:         roundCents(1 + rand.Float64()*(*maxAmount-1)),
			Currency:       currencies[rand.Intn(len(currencies))],
			MerchantID:     fmt.Sprintf("merchant-%02d", i%5),
			PaymentGateway: gateways[rand.Intn(len(gateways))],
		}
	}
	close(requests)
	wg.Wait()
	close(outcomes)

	printSummary(outcomes, time.Since(start))
}

// submit posts one payment and decodes the outcome.
func submit(client *http.Client, addr string, req gateway.Request) outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return outcome{err: fmt.Errorf("submit: encoding request: %w", err)}
	}

	start := time.Now()
	resp, err := client.Post(addr+"/api/payments", "application/json", bytes.NewReader(body))
	if err != nil {
		return outcome{err: fmt.Errorf("submit: posting payment: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return outcome{err: fmt.Errorf("submit: server rejected payment (%d): %s", resp.StatusCode, apiErr.Error)}
	}

	var result gateway.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return outcome{err: fmt.Errorf("submit: decoding result: %w", err)}
	}

	return outcome{result: result, elapsed: time.Since(start)}
}

// printSummary renders a per-outcome latency table plus run totals.
func printSummary(outcomes <-chan outcome, elapsed time.Duration) {
	type group struct {
		count      int
		fraud      int
		minLatency int
		maxLatency int
		sumLatency int
	}
	groups := map[string]*group{}
	var errCount int

	for o := range outcomes {
		if o.err != nil {
			errCount++
			continue
		}

		g, ok := groups[string(o.result.Status)]
		if !ok {
			g = &group{minLatency: o.result.LatencyMS}
			groups[string(o.result.Status)] = g
		}

		g.count++
		g.sumLatency += o.result.LatencyMS
		if o.result.LatencyMS < g.minLatency {
			g.minLatency = o.result.LatencyMS
		}
		if o.result.LatencyMS > g.maxLatency {
			g.maxLatency = o.result.LatencyMS
		}
		if o.result.IsFraud {
			g.fraud++
		}
	}

	fmt.Println("\n=== Load Run Summary ===")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Status", "Count", "Fraud", "Min (ms)", "Avg (ms)", "Max (ms)"})

	var processed int
	for _, status := range []string{"success", "failed"} {
		g, ok := groups[status]
		if !ok {
			table.Append([]string{status, "0", "0", "N/A", "N/A", "N/A"})
			continue
		}

		processed += g.count
		table.Append([]string{
			status,
			fmt.Sprintf("%d", g.count),
			fmt.Sprintf("%d", g.fraud),
			fmt.Sprintf("%d", g.minLatency),
			fmt.Sprintf("%.1f", float64(g.sumLatency)/float64(g.count)),
			fmt.Sprintf("%d", g.maxLatency),
		})
	}

	table.Render()

	fmt.Printf("Processed %d payments (%d errors) in %s\n", processed, errCount, elapsed.Round(time.Millisecond))
}

func roundCents(amount float64) float64 {
	return float64(int(amount*100)) / 100
}
