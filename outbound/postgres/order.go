package postgres

import (
	"concert-ticket-pipeline/common/contract"
	"concert-ticket-pipeline/model"
	"context"
	"encoding/json"
	"fmt"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const upsertOrderQuery = `INSERT INTO %s (order_id, purchase_timestamp, concert_id, total_amount, payment_status, document)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (order_id) DO UPDATE SET
	purchase_timestamp = EXCLUDED.purchase_timestamp,
	concert_id = EXCLUDED.concert_id,
	total_amount = EXCLUDED.total_amount,
	payment_status = EXCLUDED.payment_status,
	document = EXCLUDED.document,
	updated_at = now()`

// OrderStore keeps the final order document, one row per order id.
type OrderStore struct {
	Db contract.DbConn

	upsertQuery string
}

func NewOrderStore(db contract.DbConn, table string) *OrderStore {
	return &OrderStore{
		Db:          db,
		upsertQuery: fmt.Sprintf(upsertOrderQuery, pgx.Identifier{table}.Sanitize()),
	}
}

func (s *OrderStore) SaveOrder(ctx context.Context, order model.Order) error {
	document, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "marshal order document")
	}

	concertID, hasConcertID := order.ConcertID.Get()
	total, hasTotal := order.TotalAmount.Get()

	_, err = s.Db.Exec(ctx, s.upsertQuery,
		order.OrderID,
		order.PurchaseTimestamp,
		pgtype.Text{String: concertID, Valid: hasConcertID},
		pgtype.Float8{Float64: total, Valid: hasTotal},
		string(order.PaymentStatus),
		string(document),
	)
	if err != nil {
		return errors.Wrapf(err, "upsert order %s", order.OrderID)
	}

	return nil
}
