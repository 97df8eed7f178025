package postgres

import (
	"concert-ticket-pipeline/common/contract"
	"context"
	"fmt"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
)

const markSeatsUnavailableQuery = `INSERT INTO %s (concert_id, seat_id, is_available)
SELECT $1, seat_id, false FROM unnest($2::text[]) AS seat_id
ON CONFLICT (concert_id, seat_id) DO UPDATE SET
	is_available = false,
	updated_at = now()`

type SeatInventoryStore struct {
	Db contract.DbConn

	markUnavailableQuery string
}

func NewSeatInventoryStore(db contract.DbConn, table string) *SeatInventoryStore {
	return &SeatInventoryStore{
		Db:                   db,
		markUnavailableQuery: fmt.Sprintf(markSeatsUnavailableQuery, pgx.Identifier{table}.Sanitize()),
	}
}

// MarkUnavailable sets is_available to false for every seat, creating rows
// that do not exist yet. Previous availability is not checked.
func (s *SeatInventoryStore) MarkUnavailable(ctx context.Context, concertID string, seatIDs []string) error {
	seatIDs = uniqueSeatIDs(seatIDs)
	if len(seatIDs) == 0 {
		return nil
	}

	_, err := s.Db.Exec(ctx, s.markUnavailableQuery, concertID, seatIDs)
	if err != nil {
		return errors.Wrapf(err, "mark seats unavailable for concert %s", concertID)
	}

	return nil
}

// ON CONFLICT DO UPDATE rejects a statement touching the same row twice.
func uniqueSeatIDs(seatIDs []string) []string {
	seen := make(map[string]struct{}, len(seatIDs))
	unique := make([]string, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		if _, ok := seen[seatID]; ok {
			continue
		}
		seen[seatID] = struct{}{}
		unique = append(unique, seatID)
	}
	return unique
}
