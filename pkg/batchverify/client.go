package batchverify

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// progressEvery is how many verified records pass between progress logs.
const progressEvery = 10000

// Result is the outcome for the record at Index in the input.
type Result struct {
	Index int
	Valid bool
}

// Report summarizes a batch.  Results are in input order.
type Report struct {
	Results []Result
	Valid   int
	Invalid int
}

// AllValid reports whether every record verified.
func (r *Report) AllValid() bool {
	return r.Invalid == 0
}

// Client verifies batches of signatures in parallel.
type Client struct {
	parser  RecordParser
	workers int
	metrics *Metrics
}

// NewClient creates a new client with default settings: JSON input and one
// worker per CPU.
func NewClient() *Client {
	return &Client{
		parser:  &JSONParser{},
		workers: runtime.NumCPU(),
	}
}

// WithParser sets a custom record parser.
func (c *Client) WithParser(parser RecordParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets the number of parallel workers.  Zero or less means one
// per CPU.
func (c *Client) WithWorkers(n int) *Client {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	c.workers = n
	return c
}

// WithMetrics makes the client update m.
func (c *Client) WithMetrics(m *Metrics) *Client {
	c.metrics = m
	return c
}

// VerifyFile parses source with the client's parser and verifies every
// record.
func (c *Client) VerifyFile(ctx context.Context, source string) (*Report, error) {
	records, err := c.parser.ParseRecords(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return c.Verify(ctx, records)
}

// Verify checks every record on a bounded pool of workers.  It stops early
// and returns ctx.Err() when ctx is cancelled.
func (c *Client) Verify(ctx context.Context, records []*Record) (*Report, error) {
	start := time.Now()
	results := make([]Result, len(records))
	var verified int64

	log.Info("verifying batch",
		zap.Int("records", len(records)),
		zap.Int("workers", c.workers))

	work := make(chan int, c.workers*10)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for i := range records {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case work <- i:
			}
		}
		return nil
	})

	for w := 0; w < c.workers; w++ {
		g.Go(func() error {
			for i := range work {
				if err := gctx.Err(); err != nil {
					return err
				}

				rec := records[i]
				valid := rec.PubKey.Verify(rec.Z, rec.Sig)
				results[i] = Result{Index: i, Valid: valid}
				c.metrics.observe(valid)
				if !valid {
					log.Debug("record failed verification", zap.Int("index", i))
				}

				if n := atomic.AddInt64(&verified, 1); n%progressEvery == 0 {
					log.Info("batch progress", zap.Int64("verified", n))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	for _, r := range results {
		if r.Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}
	if c.metrics != nil {
		c.metrics.duration.Observe(time.Since(start).Seconds())
	}

	log.Info("batch verified",
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}
