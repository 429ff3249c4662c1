package ingest

import (
	"context"
	"fmt"
	"log"

	"csvload/internal/storage"
)

// verifyCount reads the destination row count after a load. The exact count
// is preferred; when that query fails (permissions, locks) the catalog-stats
// estimate is tried instead. Verification never fails the run: when both
// queries error the load still stands, so the caller only gets a warning.
func verifyCount(ctx context.Context, repo storage.Repository, table string) (count int64, estimated bool, err error) {
	count, err = repo.Count(ctx)
	if err == nil {
		return count, false, nil
	}
	log.Printf("warning: exact row count of %s failed (%v); falling back to catalog statistics", table, err)

	est, estErr := repo.CountEstimate(ctx)
	if estErr == nil {
		return est, true, nil
	}
	return 0, false, fmt.Errorf("count: %v; estimate: %v", err, estErr)
}
