package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketFilter narrows dashboard listings.
type TicketFilter struct {
	OwnerID *int64
}

// TicketRepository encapsulates ticket persistence. Owner and message
// snapshots are stored with the ticket and never rehydrated from users.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
	// AppendMessage adds msg to the thread and sets updatedTimestamp to msg.Timestamp.
	AppendMessage(ctx context.Context, id int64, msg domain.Message) error
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, updatedAt time.Time) error
	UpdatePriority(ctx context.Context, id int64, priority int, updatedAt time.Time) error
}

type ticketRepository struct {
	pool querier
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, owner, priority, created_timestamp, updated_timestamp, messages`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	owner, err := json.Marshal(ticket.Owner)
	if err != nil {
		return err
	}
	messages, err := json.Marshal(ticket.Messages)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO tickets (title, description, status, owner, priority, created_timestamp, updated_timestamp, messages)
        VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8::jsonb)
        RETURNING id`
	err = r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		string(owner),
		ticket.Priority,
		ticket.CreatedTimestamp,
		ticket.UpdatedTimestamp,
		string(messages),
	).Scan(&ticket.ID)
	return translateError(err)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
	ticket, err := scanTicket(row)
	if err != nil {
		return nil, translateError(err)
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		query += fmt.Sprintf(` WHERE (owner->>'id')::bigint = $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
}

func (r *ticketRepository) AppendMessage(ctx context.Context, id int64, msg domain.Message) error {
	payload, err := json.Marshal([]domain.Message{msg})
	if err != nil {
		return err
	}
	// Concatenation happens in the database so concurrent appends both land.
	const query = `
        UPDATE tickets SET messages = messages || $1::jsonb, updated_timestamp=$2
        WHERE id=$3`
	return r.exec(ctx, query, string(payload), msg.Timestamp, id)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus, updatedAt time.Time) error {
	return r.exec(ctx, `UPDATE tickets SET status=$1, updated_timestamp=$2 WHERE id=$3`, status, updatedAt, id)
}

func (r *ticketRepository) UpdatePriority(ctx context.Context, id int64, priority int, updatedAt time.Time) error {
	return r.exec(ctx, `UPDATE tickets SET priority=$1, updated_timestamp=$2 WHERE id=$3`, priority, updatedAt, id)
}

func (r *ticketRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket   domain.Ticket
		owner    []byte
		messages []byte
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&owner,
		&ticket.Priority,
		&ticket.CreatedTimestamp,
		&ticket.UpdatedTimestamp,
		&messages,
	); err != nil {
		return nil, err
	}
	if err := decodeSnapshots(owner, messages, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func decodeSnapshots(owner, messages []byte, ticket *domain.Ticket) error {
	if err := json.Unmarshal(owner, &ticket.Owner); err != nil {
		return fmt.Errorf("decode ticket %d owner: %w", ticket.ID, err)
	}
	if err := json.Unmarshal(messages, &ticket.Messages); err != nil {
		return fmt.Errorf("decode ticket %d messages: %w", ticket.ID, err)
	}
	return nil
}
