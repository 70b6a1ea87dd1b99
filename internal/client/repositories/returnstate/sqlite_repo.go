package returnstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DB
}

func NewSQLiteRepository(db dbx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, name string, st models.ReturnState) error {
	query := `
		INSERT INTO return_state (name, page, scroll_to_id, view) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			page = excluded.page,
			scroll_to_id = excluded.scroll_to_id,
			view = excluded.view
	`
	if _, err := r.db.ExecContext(ctx, query, name, st.Page, st.ScrollToID, string(st.View)); err != nil {
		return fmt.Errorf("failed to save return state %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Take(ctx context.Context, name string) (models.ReturnState, bool, error) {
	var (
		st    models.ReturnState
		found bool
	)

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var view string
		err := tx.QueryRowContext(ctx,
			`SELECT page, scroll_to_id, view FROM return_state WHERE name = ?`, name,
		).Scan(&st.Page, &st.ScrollToID, &view)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		st.View = models.ListView(view)
		found = true

		_, err = tx.ExecContext(ctx, `DELETE FROM return_state WHERE name = ?`, name)
		return err
	})
	if err != nil {
		return models.ReturnState{}, false, fmt.Errorf("failed to take return state %s: %w", name, err)
	}

	return st, found, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM return_state WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete return state %s: %w", name, err)
	}
	return nil
}
