package bench

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/marketplace-system/internal/infrastructure/rpcclient"
)

// Scenario sizes the simulated population.
type Scenario struct {
	Sellers int
	Buyers  int
}

// Scenarios are the predefined populations selectable by number.
var Scenarios = map[int]Scenario{
	1: {Sellers: 1, Buyers: 1},
	2: {Sellers: 10, Buyers: 10},
	3: {Sellers: 100, Buyers: 100},
}

type Config struct {
	SellerAddr     string
	BuyerAddr      string
	ItemsPerSeller int
	Category       int
	SellerRounds   int
	BuyerRounds    int
	Timeout        time.Duration
}

func (c *Config) defaults() {
	if c.ItemsPerSeller <= 0 {
		c.ItemsPerSeller = 10
	}
	if c.Category <= 0 {
		c.Category = 1
	}
	if c.SellerRounds <= 0 {
		c.SellerRounds = SellerRounds
	}
	if c.BuyerRounds <= 0 {
		c.BuyerRounds = BuyerRounds
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Result summarises one measured run.
type Result struct {
	Ops        int
	Skipped    int
	Elapsed    time.Duration
	AvgLatency time.Duration
	P95        time.Duration
	P99        time.Duration
	Throughput float64
}

// recorder collects per-call latencies from concurrent clients.
type recorder struct {
	mu      sync.Mutex
	samples []float64
	skipped int
}

func newRecorder() *recorder { return &recorder{} }

func (r *recorder) observe(d time.Duration) {
	r.mu.Lock()
	r.samples = append(r.samples, d.Seconds())
	r.mu.Unlock()
}

func (r *recorder) skip() {
	r.mu.Lock()
	r.skipped++
	r.mu.Unlock()
}

func (r *recorder) result(elapsed time.Duration) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := Result{Ops: len(r.samples), Skipped: r.skipped, Elapsed: elapsed}
	if res.Ops == 0 {
		return res
	}
	data := stats.Float64Data(r.samples)
	mean, _ := stats.Mean(data)
	p95, _ := stats.Percentile(data, 95)
	p99, _ := stats.Percentile(data, 99)
	res.AvgLatency = seconds(mean)
	res.P95 = seconds(p95)
	res.P99 = seconds(p99)
	if elapsed > 0 {
		res.Throughput = float64(res.Ops) / elapsed.Seconds()
	}
	return res
}

func seconds(f float64) time.Duration { return time.Duration(f * float64(time.Second)) }

// RunOnce sets up the scenario's accounts and items, then runs every
// simulated client concurrently on its own persistent connection.
func RunOnce(ctx context.Context, cfg Config, sc Scenario, log zerolog.Logger) (Result, error) {
	cfg.defaults()

	sellerSetup := rpcclient.NewPersistent(cfg.SellerAddr, cfg.Timeout, log)
	defer sellerSetup.Close()
	buyerSetup := rpcclient.NewPersistent(cfg.BuyerAddr, cfg.Timeout, log)
	defer buyerSetup.Close()

	sellers, err := setupSellers(ctx, sellerSetup, sc.Sellers, cfg.ItemsPerSeller, cfg.Category)
	if err != nil {
		return Result{}, fmt.Errorf("bench setup: %w", err)
	}
	buyers, err := setupBuyers(ctx, buyerSetup, sc.Buyers)
	if err != nil {
		return Result{}, fmt.Errorf("bench setup: %w", err)
	}

	rec := newRecorder()
	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()

	for _, s := range sellers {
		g.Go(func() error {
			c := rpcclient.NewPersistent(cfg.SellerAddr, cfg.Timeout, log)
			defer c.Close()
			sellerWorkload(gctx, &session{c: c, rec: rec, id: s.Session}, s.Items, cfg.SellerRounds)
			return nil
		})
	}
	for i, b := range buyers {
		g.Go(func() error {
			c := rpcclient.NewPersistent(cfg.BuyerAddr, cfg.Timeout, log)
			defer c.Close()
			buyerWorkload(gctx, &session{c: c, rec: rec, id: b.Session}, cfg.Category, i, cfg.BuyerRounds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return rec.result(time.Since(start)), ctx.Err()
}

// Run repeats RunOnce and writes one line per run plus the averages to w.
func Run(ctx context.Context, cfg Config, scenario, runs int, w io.Writer, log zerolog.Logger) ([]Result, error) {
	sc, ok := Scenarios[scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %d", scenario)
	}

	results := make([]Result, 0, runs)
	for r := range runs {
		res, err := RunOnce(ctx, cfg, sc, log)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		fmt.Fprintf(w, "run %d/%d: avg_resp=%.6fs p95=%.6fs p99=%.6fs throughput=%.2f ops/s skipped=%d\n",
			r+1, runs, res.AvgLatency.Seconds(), res.P95.Seconds(), res.P99.Seconds(), res.Throughput, res.Skipped)
	}

	var avg, thr []float64
	for _, res := range results {
		avg = append(avg, res.AvgLatency.Seconds())
		thr = append(thr, res.Throughput)
	}
	meanAvg, _ := stats.Mean(avg)
	meanThr, _ := stats.Mean(thr)
	fmt.Fprintf(w, "\n=== Averages over runs ===\n")
	fmt.Fprintf(w, "Scenario %d: sellers=%d, buyers=%d\n", scenario, sc.Sellers, sc.Buyers)
	fmt.Fprintf(w, "Average response time (s/op): %.6f\n", meanAvg)
	fmt.Fprintf(w, "Average throughput (ops/s):    %.2f\n", meanThr)
	return results, nil
}
