package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
)

const userColumns = `id, screen_name, name, message, visibility, listed, displays_past, hashed_token, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByScreenName(ctx context.Context, screenName string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM user WHERE screen_name = ?`, screenName)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM user ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user (id, screen_name, name, message, visibility, listed, displays_past, hashed_token, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.ScreenName, u.Name, u.Message, string(u.Visibility),
		boolToInt(u.Listed), boolToInt(u.DisplaysPast), u.HashedToken,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, userID string, upd domain.UserUpdate) error {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if upd.ScreenName != nil {
		sets = append(sets, "screen_name = ?")
		args = append(args, *upd.ScreenName)
	}
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Message != nil {
		sets = append(sets, "message = ?")
		args = append(args, *upd.Message)
	}
	if upd.Visibility != nil {
		sets = append(sets, "visibility = ?")
		args = append(args, string(*upd.Visibility))
	}
	if upd.Listed != nil {
		sets = append(sets, "listed = ?")
		args = append(args, boolToInt(*upd.Listed))
	}
	if upd.DisplaysPast != nil {
		sets = append(sets, "displays_past = ?")
		args = append(args, boolToInt(*upd.DisplaysPast))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), userID)

	res, err := r.db.ExecContext(ctx,
		`UPDATE user SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdateTokenHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user SET hashed_token = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		visibility           string
		listed, displaysPast int64
	)
	err := row.Scan(
		&u.ID, &u.ScreenName, &u.Name, &u.Message, &visibility,
		&listed, &displaysPast, &u.HashedToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Visibility = domain.Visibility(visibility)
	u.Listed = listed == 1
	u.DisplaysPast = displaysPast == 1
	return u, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
