package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// PostgresTableRepository implements TableRepository against a PostgreSQL
// database. Users and per-user selection lists are separate rows keyed by
// (table_code, user_id), so a selection push only ever writes the caller's
// own row.
type PostgresTableRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresTableRepository creates a new PostgresTableRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresTableRepository(db *sql.DB) *PostgresTableRepository {
	return &PostgresTableRepository{DB: db}
}

// Create inserts the table row and its first member in one transaction.
func (r *PostgresTableRepository) Create(ctx context.Context, code, restaurantID string, creator models.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tables (code, restaurant_id)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET
			restaurant_id = EXCLUDED.restaurant_id,
			updated_at = now()
	`, code, restaurantID)
	if err != nil {
		return fmt.Errorf("insert table: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO table_users (table_code, user_id, name, color, ordinal)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (table_code, user_id) DO NOTHING
	`, code, creator.ID, creator.Name, creator.Color)
	if err != nil {
		return fmt.Errorf("insert creator: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Exists probes for the table row only.
func (r *PostgresTableRepository) Exists(ctx context.Context, code string) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM tables WHERE code = $1)
	`, code).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("Exists failed: %w", err)
	}
	return found, nil
}

// Get assembles the snapshot: the table row, every member, and the merged
// selections view. Contributor lists are ordered by join ordinal so the
// snapshot is deterministic.
func (r *PostgresTableRepository) Get(ctx context.Context, code string) (*models.TableData, error) {
	data := &models.TableData{
		Users:      map[string]models.User{},
		Selections: map[string][]string{},
	}

	err := r.DB.QueryRowContext(ctx, `
		SELECT restaurant_id FROM tables WHERE code = $1
	`, code).Scan(&data.RestaurantID)
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get table: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, name, color FROM table_users
		WHERE table_code = $1 ORDER BY ordinal
	`, code)
	if err != nil {
		return nil, fmt.Errorf("Get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Color); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		data.Users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users rows: %w", err)
	}

	selRows, err := r.DB.QueryContext(ctx, `
		SELECT s.user_id, s.dish_ids FROM table_selections s
		JOIN table_users u ON u.table_code = s.table_code AND u.user_id = s.user_id
		WHERE s.table_code = $1 ORDER BY u.ordinal
	`, code)
	if err != nil {
		return nil, fmt.Errorf("Get selections: %w", err)
	}
	defer selRows.Close()

	for selRows.Next() {
		var userID string
		var dishIDs pq.StringArray
		if err := selRows.Scan(&userID, &dishIDs); err != nil {
			return nil, fmt.Errorf("scan selections: %w", err)
		}
		for _, dishID := range dishIDs {
			data.Selections[dishID] = append(data.Selections[dishID], userID)
		}
	}
	if err := selRows.Err(); err != nil {
		return nil, fmt.Errorf("selections rows: %w", err)
	}

	return data, nil
}

// AddUser inserts one member row with the next join ordinal.
func (r *PostgresTableRepository) AddUser(ctx context.Context, code string, u models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO table_users (table_code, user_id, name, color, ordinal)
		SELECT $1, $2, $3, $4, COALESCE(MAX(ordinal) + 1, 0)
		FROM table_users WHERE table_code = $1
	`, code, u.ID, u.Name, u.Color)
	if err != nil {
		return fmt.Errorf("AddUser: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("AddUser rows: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `UPDATE tables SET updated_at = now() WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("AddUser touch: %w", err)
	}
	return nil
}

// SetUserSelections replaces one user's selection list. Other users' rows
// are never touched, which is what closes the lost-update race of a shared
// selections document.
func (r *PostgresTableRepository) SetUserSelections(ctx context.Context, code, userID string, dishIDs []string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO table_selections (table_code, user_id, dish_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (table_code, user_id) DO UPDATE SET dish_ids = EXCLUDED.dish_ids
	`, code, userID, pq.Array(dishIDs))
	if err != nil {
		return fmt.Errorf("SetUserSelections: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `UPDATE tables SET updated_at = now() WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("SetUserSelections touch: %w", err)
	}
	return nil
}
