// ABOUTME: Data migration between swim storage backends.
// ABOUTME: Copies every gateway document from source to destination.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/swimbook/internal/kv"
)

// MigrateSummary lists the keys that were copied and skipped.
type MigrateSummary struct {
	Copied  []string
	Skipped []string
}

// MigrateData copies every gateway document from src to dst.
// Documents are copied byte for byte; keys missing in src are skipped and
// left untouched in dst. With dryRun nothing is written.
func MigrateData(ctx context.Context, src, dst kv.Store, dryRun bool) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range AllKeys {
		value, err := src.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			summary.Skipped = append(summary.Skipped, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}

		if !dryRun {
			if err := dst.Set(ctx, key, value); err != nil {
				return nil, fmt.Errorf("write destination %s: %w", key, err)
			}
		}
		summary.Copied = append(summary.Copied, key)
	}

	return summary, nil
}
