package messagely

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Messages interface {
	repository.Repository[*Message]

	GetWithParticipants(ctx context.Context, id uuid.UUID) (*Message, error)
	GetWithParticipantsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Message, error)

	Send(ctx context.Context, msg *Message) (*Message, error)
	SendTx(ctx context.Context, tx bun.IDB, msg *Message) (*Message, error)

	MarkRead(ctx context.Context, id uuid.UUID) (*Message, error)
	MarkReadTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Message, error)

	ListFrom(ctx context.Context, username string) ([]*Message, error)
	ListTo(ctx context.Context, username string) ([]*Message, error)
}

type messages struct {
	repository.Repository[*Message]
	db *bun.DB
}

var (
	_ Messages                        = (*messages)(nil)
	_ repository.Repository[*Message] = (*messages)(nil)
)

func NewMessagesRepository(db *bun.DB) Messages {
	repo := repository.NewRepository[*Message](db, repository.ModelHandlers[*Message]{
		NewRecord: func() *Message { return &Message{} },
		GetID: func(m *Message) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Message, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
	})

	return &messages{
		Repository: repo,
		db:         db,
	}
}

func (a *messages) GetWithParticipants(ctx context.Context, id uuid.UUID) (*Message, error) {
	return a.GetWithParticipantsTx(ctx, a.db, id)
}

func (a *messages) GetWithParticipantsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Message, error) {
	record := &Message{}
	err := tx.NewSelect().
		Model(record).
		Relation("FromUser").
		Relation("ToUser").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *messages) Send(ctx context.Context, msg *Message) (*Message, error) {
	return a.SendTx(ctx, a.db, msg)
}

func (a *messages) SendTx(ctx context.Context, tx bun.IDB, msg *Message) (*Message, error) {
	prepareMessageDefaults(msg)
	return a.Repository.CreateTx(ctx, tx, msg)
}

// MarkRead stamps read_at on first call only. Re-marking is a no-op that
// returns the record with the stored timestamp.
func (a *messages) MarkRead(ctx context.Context, id uuid.UUID) (*Message, error) {
	return a.MarkReadTx(ctx, a.db, id)
}

func (a *messages) MarkReadTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Message, error) {
	readAt := time.Now()
	res, err := tx.NewRaw(`
		UPDATE "messages" AS "msg"
		SET
			"read_at" = COALESCE("msg"."read_at", ?)
		WHERE
			("msg".id = ?);
	`, readAt, id).Exec(ctx)

	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return a.GetWithParticipantsTx(ctx, tx, id)
}

func (a *messages) ListFrom(ctx context.Context, username string) ([]*Message, error) {
	var records []*Message
	err := a.db.NewSelect().
		Model(&records).
		Relation("ToUser").
		Where("?TableAlias.from_username = ?", username).
		Order("sent_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (a *messages) ListTo(ctx context.Context, username string) ([]*Message, error) {
	var records []*Message
	err := a.db.NewSelect().
		Model(&records).
		Relation("FromUser").
		Where("?TableAlias.to_username = ?", username).
		Order("sent_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func prepareMessageDefaults(record *Message) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.SentAt == nil {
		now := time.Now()
		record.SentAt = &now
	}
}
