package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TxRunner wraps a unit of work in a database transaction. The handle is passed
// explicitly into the closure; commit-on-success and rollback-on-error happen
// through a single exit path so callers never manage the transaction lifecycle
// themselves.
type TxRunner interface {
	InSerializableTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// InSerializableTx runs fn inside a serializable transaction on the write
// connection. Every read-modify-write of inventory counters goes through here;
// row locks acquired inside fn are held until commit or rollback.
func (c *Connection) InSerializableTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction after panic")
			}

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}

			return
		}

		if cmErr := tx.Commit(); cmErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cmErr)
		}
	}()

	err = fn(tx)

	return err
}
