//go:build ignore

// Loadtest fires concurrent paper generation requests at the service and
// checks every successful paper: marks must add up to the requested total and
// no question may appear twice.
//
// Usage:
//
//	go run scripts/loadtest.go -url http://localhost:3000/api/generate-question-paper -concurrency 10 -requests 1000
//	go run scripts/loadtest.go -total 50 -dist '{"easy":40,"medium":60}' -csv results.csv -out summary.json
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type paperResponse struct {
	Success             bool   `json:"success"`
	PaperID             string `json:"paperId"`
	Error               string `json:"error"`
	Kind                string `json:"kind"`
	TotalMarksGenerated int    `json:"totalMarksGenerated"`
	QuestionPaper       []struct {
		ID    json.RawMessage `json:"id"`
		Marks int             `json:"marks"`
	} `json:"questionPaper"`
}

// check returns a description of the first broken paper invariant, or "".
func check(resp paperResponse, total int) string {
	if _, err := uuid.Parse(resp.PaperID); err != nil {
		return fmt.Sprintf("bad paper id %q", resp.PaperID)
	}

	sum := 0
	seen := make(map[string]bool, len(resp.QuestionPaper))
	for _, q := range resp.QuestionPaper {
		id := string(q.ID)
		if seen[id] {
			return fmt.Sprintf("question %s selected twice", id)
		}
		seen[id] = true
		sum += q.Marks
	}

	if len(resp.QuestionPaper) == 0 {
		return ""
	}
	if sum != total || resp.TotalMarksGenerated != total {
		return fmt.Sprintf("marks sum %d, reported %d, requested %d", sum, resp.TotalMarksGenerated, total)
	}
	return ""
}

func percentiles(latencies []time.Duration) (p50, p90, p95, p99 time.Duration) {
	if len(latencies) == 0 {
		return
	}
	tmp := slices.Clone(latencies)
	slices.Sort(tmp)
	p := func(pct float64) time.Duration {
		return tmp[int(float64(len(tmp)-1)*pct)]
	}
	return p(0.50), p(0.90), p(0.95), p(0.99)
}

func main() {
	var (
		url         = flag.String("url", "http://localhost:3000/api/generate-question-paper", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		total       = flag.Int("total", 100, "totalMarks to request")
		dist        = flag.String("dist", `{"easy":30,"medium":50,"hard":20}`, "difficultyDistribution JSON object")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
	)

	outJSON := flag.String("out", "", "Write JSON summary to this file (optional)")
	outCSV := flag.String("csv", "", "Write per-request CSV to this file (optional)")
	verbose := flag.Bool("v", false, "Verbose per-request logging to stdout")
	flag.Parse()

	body := fmt.Sprintf(`{"totalMarks":%d,"difficultyDistribution":%s}`, *total, *dist)
	if !json.Valid([]byte(body)) {
		fmt.Fprintf(os.Stderr, "invalid -dist: %s\n", *dist)
		os.Exit(1)
	}

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var sent, generated, rejected, transportErrors, violations atomic.Int32

	var latencies []time.Duration
	var latMu sync.Mutex

	statusCodes := make(map[int]int32)
	var statusMu sync.Mutex

	var violationSamples []string
	var violationMu sync.Mutex

	var csvFile *os.File
	var csvWriter *csv.Writer
	var csvMu sync.Mutex
	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create csv file: %v\n", err)
			os.Exit(1)
		}
		csvFile = f
		csvWriter = csv.NewWriter(f)
		csvWriter.Write([]string{"idx", "timestamp", "status", "kind", "questions", "duration_ms"})
	}

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				sent.Add(1)
				start := time.Now()

				resp, err := client.Post(*url, "application/json", bytes.NewBufferString(body))
				dur := time.Since(start)

				latMu.Lock()
				latencies = append(latencies, dur)
				latMu.Unlock()

				if err != nil {
					transportErrors.Add(1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				payload, _ := io.ReadAll(resp.Body)
				resp.Body.Close()

				statusMu.Lock()
				statusCodes[resp.StatusCode]++
				statusMu.Unlock()

				var paper paperResponse
				if err := json.Unmarshal(payload, &paper); err != nil {
					paper.Kind = "undecodable"
				}

				if resp.StatusCode == http.StatusOK {
					generated.Add(1)
					if problem := check(paper, *total); problem != "" {
						violations.Add(1)
						violationMu.Lock()
						if len(violationSamples) < 10 {
							violationSamples = append(violationSamples, problem)
						}
						violationMu.Unlock()
					}
				} else {
					rejected.Add(1)
				}

				if csvWriter != nil {
					csvMu.Lock()
					csvWriter.Write([]string{
						strconv.Itoa(idx),
						time.Now().Format(time.RFC3339Nano),
						strconv.Itoa(resp.StatusCode),
						paper.Kind,
						strconv.Itoa(len(paper.QuestionPaper)),
						fmt.Sprintf("%.3f", float64(dur.Microseconds())/1000.0),
					})
					csvMu.Unlock()
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d questions=%d dur=%v\n", workerID, idx, resp.StatusCode, len(paper.QuestionPaper), dur)
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)

	if csvWriter != nil {
		csvWriter.Flush()
		csvFile.Close()
	}

	throughput := float64(sent.Load()) / totalDuration.Seconds()

	fmt.Println("--- Paper Load Test Summary ---")
	fmt.Printf("Target: %s\n", *url)
	fmt.Printf("Request: %s\n", body)
	fmt.Printf("Requests: %d  Concurrency: %d\n", *requests, *concurrency)
	fmt.Printf("Sent: %d  Generated: %d  Rejected: %d  Transport errors: %d\n",
		sent.Load(), generated.Load(), rejected.Load(), transportErrors.Load())
	fmt.Printf("Invariant violations: %d\n", violations.Load())
	for _, v := range violationSamples {
		fmt.Printf("  %s\n", v)
	}
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", totalDuration, throughput)

	fmt.Println("\nStatus codes:")
	codes := make([]int, 0, len(statusCodes))
	for k := range statusCodes {
		codes = append(codes, k)
	}
	slices.Sort(codes)
	for _, k := range codes {
		fmt.Printf("  %d -> %d\n", k, statusCodes[k])
	}

	p50, p90, p95, p99 := percentiles(latencies)
	if len(latencies) > 0 {
		fmt.Println("\nLatencies:")
		fmt.Printf("  samples=%d min=%v max=%v p50=%v p90=%v p95=%v p99=%v\n",
			len(latencies), slices.Min(latencies), slices.Max(latencies), p50, p90, p95, p99)
	}

	fmt.Printf("\nGOMAXPROCS=%d  NumGoroutine=%d\n", runtime.GOMAXPROCS(0), runtime.NumGoroutine())

	if *outJSON != "" {
		report := map[string]any{
			"target":               *url,
			"request":              json.RawMessage(body),
			"requests":             *requests,
			"concurrency":          *concurrency,
			"sent":                 sent.Load(),
			"generated":            generated.Load(),
			"rejected":             rejected.Load(),
			"transport_errors":     transportErrors.Load(),
			"invariant_violations": violations.Load(),
			"status_codes":         statusCodes,
			"duration_ms":          totalDuration.Milliseconds(),
			"throughput_rps":       throughput,
			"p50_ms":               float64(p50.Microseconds()) / 1000,
			"p90_ms":               float64(p90.Microseconds()) / 1000,
			"p95_ms":               float64(p95.Microseconds()) / 1000,
			"p99_ms":               float64(p99.Microseconds()) / 1000,
		}

		f, err := os.Create(*outJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create json file: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		f.Close()
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if violations.Load() > 0 || transportErrors.Load() > 0 {
		os.Exit(2)
	}
}
