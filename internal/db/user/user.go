package user

import (
	"context"
	"errors"
	c "oroshine/internal/core/domain/common"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx alike, so the same repository
// works standalone and inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

const selectUser = `
SELECT id, email, password_hash, security_stamp, created_at, activated_at
FROM "user"
`

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, selectUser+`WHERE email = $1`, string(email))
	return scanUser(row)
}

func (r *PgxUserRepository) GetActiveByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, selectUser+`WHERE id = $1 AND activated_at IS NOT NULL`, int64(id))
	return scanUser(row)
}

func (r *PgxUserRepository) SetPassword(
	ctx context.Context,
	id user.ID,
	password user.PasswordHash,
	stamp user.SecurityStamp,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2, security_stamp = $3 WHERE id = $1`,
		int64(id),
		string(password),
		string(stamp),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var id int64
	var email, passwordHash, securityStamp string
	var createdAt time.Time
	var activatedAt *time.Time

	err = row.Scan(&id, &email, &passwordHash, &securityStamp, &createdAt, &activatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}

	u = user.User{
		ID:            user.ID(id),
		Email:         c.Email(email),
		PasswordHash:  user.PasswordHash(passwordHash),
		SecurityStamp: user.SecurityStamp(securityStamp),
		CreatedAt:     createdAt,
	}
	if activatedAt != nil {
		u.ActivatedAt = c.NewOptional(*activatedAt, true)
	}
	return u, nil
}
