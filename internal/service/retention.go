package service

import (
	"context"
)

// cleanupOldBattles trims the account's battle history to the most recent
// RetentionKeepCount rows, deleting the rest in fixed-size batches to stay
// under query-size limits. Deletion is best effort: a failed batch is logged
// and skipped, never failing the sync, because the cumulative friend
// counters do not depend on retained rows. Returns the count deleted.
func (s *SyncService) cleanupOldBattles(ctx context.Context, accountID string) int {
	ids, err := s.battles.ListIDsByTimeDesc(ctx, accountID, s.cfg.RetentionFetchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("failed to fetch battles for cleanup")
		return 0
	}

	if len(ids) <= s.cfg.RetentionKeepCount {
		return 0
	}

	toDelete := ids[s.cfg.RetentionKeepCount:]
	deleted := 0
	for i := 0; i < len(toDelete); i += s.cfg.DeleteBatchSize {
		end := i + s.cfg.DeleteBatchSize
		if end > len(toDelete) {
			end = len(toDelete)
		}

		batch := toDelete[i:end]
		if err := s.battles.DeleteByIDs(ctx, accountID, batch); err != nil {
			s.logger.Warn().
				Err(err).
				Str("account_id", accountID).
				Int("batch_size", len(batch)).
				Msg("failed to delete old battles")
			continue
		}
		deleted += len(batch)
	}

	if deleted > 0 {
		s.metrics.BattlesDeleted.Add(float64(deleted))
		s.logger.Debug().
			Str("account_id", accountID).
			Int("deleted", deleted).
			Msg("trimmed old battles")
	}
	return deleted
}
