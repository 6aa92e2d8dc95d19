package kmp

import (
	"context"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// MatchBatch searches each text independently and returns the match offsets per text,
// in input order. Texts are searched in parallel, at most WithConcurrency at a time;
// the compiled failure function is shared read-only between the workers.
//
// MatchBatch stops scheduling new texts once ctx is done and returns ctx's error.
func (m *Matcher) MatchBatch(ctx context.Context, texts [][]byte) ([][]int, error) {
	results := make([][]int, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.FindAll(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debug("Batch search aborted",
			"pattern_len", len(m.pattern),
			"text_count", len(texts),
			"error", err)
		return nil, err
	}

	logger.Debug("Batch search completed",
		"pattern_len", len(m.pattern),
		"text_count", len(texts),
		"concurrency", m.cfg.concurrency,
		"duration", time.Since(startTime))

	return results, nil
}
