package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// PruneExpired forgets keys delivered more than retention before now. It is
// meant to run as a periodic job; failures are logged, not returned.
func PruneExpired(ctx context.Context, l Ledger, now time.Time, retention time.Duration, logger zerolog.Logger) {
	n, err := l.Prune(ctx, now.Add(-retention))
	if err != nil {
		logger.Warn().Err(err).Msg("ledger prune failed")
		return
	}
	if n > 0 {
		logger.Debug().Int("pruned", n).Msg("ledger pruned")
	}
}
