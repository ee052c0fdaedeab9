package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"inkledger/internal/domain"
)

type InkRepo struct{ db *sqlx.DB }

func NewInkRepo(db *sqlx.DB) *InkRepo { return &InkRepo{db: db} }

type inkRow struct {
	ID          string  `db:"id"`
	OwnerID     string  `db:"user_id"`
	Name        string  `db:"name"`
	Color       string  `db:"color"`
	CostPerML   float64 `db:"cost_per_ml"`
	Supplier    string  `db:"supplier"`
	Description string  `db:"description"`
	CreatedAt   string  `db:"created_at"`
}

func (r inkRow) toDomain() (domain.Ink, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Ink{}, fmt.Errorf("ink %s: %w", r.ID, err)
	}
	return domain.Ink{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Color:       r.Color,
		CostPerML:   r.CostPerML,
		Supplier:    r.Supplier,
		Description: r.Description,
		CreatedAt:   created,
	}, nil
}

const inkCols = `id, user_id, name, color, cost_per_ml, supplier, description, created_at`

func (r *InkRepo) ListInks(ownerID string) ([]domain.Ink, error) {
	var rows []inkRow
	err := r.db.Select(&rows, `
	  SELECT `+inkCols+`
	  FROM inks
	  WHERE user_id = ? AND deleted_at IS NULL
	  ORDER BY datetime(created_at) DESC, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ink, 0, len(rows))
	for _, row := range rows {
		i, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func (r *InkRepo) GetInk(ownerID, id string) (domain.Ink, error) {
	var row inkRow
	err := r.db.Get(&row, `
	  SELECT `+inkCols+`
	  FROM inks
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ink{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Ink{}, err
	}
	return row.toDomain()
}

func (r *InkRepo) InsertInk(i domain.Ink) error {
	_, err := r.db.Exec(`
	  INSERT INTO inks(id, user_id, name, color, cost_per_ml, supplier, description, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, i.ID, i.OwnerID, i.Name, i.Color, i.CostPerML, i.Supplier, i.Description, formatTime(i.CreatedAt))
	return err
}

func (r *InkRepo) UpdateInk(i domain.Ink) error {
	res, err := r.db.Exec(`
	  UPDATE inks
	  SET name = ?, color = ?, cost_per_ml = ?, supplier = ?, description = ?
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, i.Name, i.Color, i.CostPerML, i.Supplier, i.Description, i.ID, i.OwnerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}

func (r *InkRepo) DeleteInk(ownerID, id string, now time.Time) error {
	res, err := r.db.Exec(`
	  UPDATE inks SET deleted_at = ?
	  WHERE id = ? AND user_id = ?
	`, formatTime(now), id, ownerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}
