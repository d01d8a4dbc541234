package user

import (
	"context"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/user"
)

type PgxResetRequestRepository struct {
	db DBTX
}

func NewPgxResetRequestRepository(db DBTX) *PgxResetRequestRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxResetRequestRepository{db: db}
}

func (r *PgxResetRequestRepository) Create(ctx context.Context, input user.RecordResetRequestInput) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO password_reset_request (user_id, requested_at) VALUES ($1, $2)`,
		int64(input.UserID),
		input.RequestedAt,
	)
	return err
}
