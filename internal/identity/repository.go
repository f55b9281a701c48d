package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicate signals a role-scoped email or phone collision.
	ErrDuplicate = errors.New("user already exists")
	// ErrNotFound signals that no record matched the lookup.
	ErrNotFound = errors.New("user not found")
)

// Repository is the user directory. Lookups mirror the access paths of the
// auth flows: registration checks role plus contact, sign-in matches either
// contact field across all roles, and the protected profile fetch replays the
// token claims.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByRoleAndContact(ctx context.Context, role, email, phone string) (User, error)
	FindByContact(ctx context.Context, phonemail string) (User, error)
	FindByClaims(ctx context.Context, email, phone, role string) (User, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostgresRepository implements Repository using PostgreSQL.
//
// Duplicate detection does not rely on the service's pre-insert lookup alone:
// the users table carries partial unique indexes on (role, email) and
// (role, phone), so two racing registrations cannot both insert. The
// resulting unique violation is mapped to ErrDuplicate.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user directory.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, phone, role, pin_hash, status, balance, created_at`

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, user.Name, user.Email, user.Phone, user.Role, user.PINHash,
		user.Status, user.Balance, user.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// FindByRoleAndContact fetches a record with the given role whose email or
// phone matches the supplied values.
func (r *PostgresRepository) FindByRoleAndContact(ctx context.Context, role, email, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE role = $1 AND ((email <> '' AND email = $2) OR (phone <> '' AND phone = $3))`,
		role, email, phone)
	return scanUser(row)
}

// FindByContact fetches a record whose email or phone equals phonemail,
// regardless of role.
func (r *PostgresRepository) FindByContact(ctx context.Context, phonemail string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE (email <> '' AND email = $1) OR (phone <> '' AND phone = $1)`, phonemail)
	return scanUser(row)
}

// FindByClaims fetches the record matching a token's identity snapshot.
func (r *PostgresRepository) FindByClaims(ctx context.Context, email, phone, role string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE email = $1 AND phone = $2 AND role = $3`, email, phone, role)
	return scanUser(row)
}

// UpdateStatus transitions a record's status. This is the hook used by the
// out-of-band approval collaborator, not by any request handler.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		user      User
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.Phone, &user.Role,
		&user.PINHash, &user.Status, &user.Balance, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
