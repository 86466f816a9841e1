package journal

import (
	"context"
	"fmt"
	"strings"

	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/postgresql"
)

const schemaQuery = `CREATE TABLE IF NOT EXISTS book_events (
	event_id TEXT PRIMARY KEY,
	pair TEXT NOT NULL,
	sequence BIGINT NOT NULL,
	command_offset BIGINT NOT NULL,
	type TEXT NOT NULL,
	order_id TEXT NOT NULL,
	incoming_order_id TEXT NOT NULL DEFAULT '',
	side TEXT NOT NULL,
	price BIGINT NOT NULL,
	quantity BIGINT NOT NULL,
	remaining_quantity BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (pair, sequence)
)`

const insertColumns = `INSERT INTO book_events (event_id, pair, sequence, command_offset, type, order_id, incoming_order_id, side, price, quantity, remaining_quantity, created_at) VALUES `

const columnCount = 12

// maxRowsPerStatement keeps a single INSERT under the 65535 bind parameter
// limit of the PostgreSQL protocol.
const maxRowsPerStatement = 65535 / columnCount

const lastSequenceQuery = `SELECT COALESCE(MAX(sequence), 0) FROM book_events WHERE pair = $1`

// Repository is the PostgreSQL journal.
type Repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

var _ Journal = (*Repository)(nil)

// NewRepository creates a new journal repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the book_events table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return errors.NewErrorDetailsWithObject("failed to create journal schema", string(errors.JournalSchemaError), "book_events", err.Error())
	}
	return nil
}

// Append inserts the payloads in order, in statements of at most
// maxRowsPerStatement rows. Events already journaled under the same pair and
// sequence are skipped, so retrying a batch that failed halfway, or replaying
// after a restart, does not duplicate rows.
func (r *Repository) Append(ctx context.Context, payloads []*eventv1.Payload) error {
	for start := 0; start < len(payloads); start += maxRowsPerStatement {
		end := min(start+maxRowsPerStatement, len(payloads))
		chunk := payloads[start:end]

		query, args := buildInsert(chunk)
		cmd, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			r.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("events", len(chunk)))
			return errors.NewErrorDetailsWithObject("failed to append journal events", string(errors.JournalAppendError), "book_events", err.Error())
		}

		r.logger.DebugContext(ctx, "Journaled events", logger.NewField("commandTag", cmd.String()))
	}
	return nil
}

// PublishEvents implements eventv1.Publisher.
func (r *Repository) PublishEvents(ctx context.Context, payloads []*eventv1.Payload) error {
	return r.Append(ctx, payloads)
}

// LastSequence returns the highest journaled sequence of the pair, 0 if none.
func (r *Repository) LastSequence(ctx context.Context, pair string) (int64, error) {
	var sequence int64
	if err := r.db.QueryRow(ctx, lastSequenceQuery, pair).Scan(&sequence); err != nil {
		return 0, errors.TracerFromError(err)
	}
	return sequence, nil
}

func buildInsert(payloads []*eventv1.Payload) (string, []any) {
	var sb strings.Builder
	sb.WriteString(insertColumns)

	args := make([]any, 0, len(payloads)*columnCount)
	for i, p := range payloads {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 1; c <= columnCount; c++ {
			if c > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*columnCount+c)
		}
		sb.WriteString(")")

		args = append(args,
			p.EventID,
			p.Pair,
			p.Sequence,
			p.CommandOffset,
			string(p.Type),
			p.OrderID,
			p.IncomingOrderID,
			string(p.Side),
			p.Price,
			p.Quantity,
			p.RemainingQuantity,
			p.Timestamp,
		)
	}
	sb.WriteString(" ON CONFLICT (pair, sequence) DO NOTHING")

	return sb.String(), args
}
