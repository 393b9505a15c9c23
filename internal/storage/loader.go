package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations insert
// rows (aligned to columns) and return the number of rows reported as
// inserted. It should cancel promptly when ctx is done.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches splits rows into batches of batchSize and calls copyFn for each
// one. It returns the total reported by copyFn and stops at the first error.
// A debug progress line is logged per flushed batch.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
	log logrus.FieldLogger,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total   int64
		batches int64
		start   = time.Now()
		last    = start
	)
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := min(lo+batchSize, len(rows))

		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"batch":          batches + 1,
				"total_inserted": total,
			}).Error("batch copy failed")
			return total, err
		}

		batches++
		now := time.Now()
		rps := float64(0)
		if d := now.Sub(last); d > 0 {
			rps = float64(n) / d.Seconds()
		}
		log.WithFields(logrus.Fields{
			"batch":          batches,
			"inserted":       n,
			"total_inserted": total,
			"rps":            int64(rps),
			"elapsed":        now.Sub(start).Truncate(time.Millisecond),
		}).Debug("batch flushed")
		last = now
	}
	return total, nil
}
