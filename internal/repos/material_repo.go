package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"inkledger/internal/domain"
)

type MaterialRepo struct{ db *sqlx.DB }

func NewMaterialRepo(db *sqlx.DB) *MaterialRepo { return &MaterialRepo{db: db} }

type materialRow struct {
	ID          string  `db:"id"`
	OwnerID     string  `db:"user_id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	CostPerUnit float64 `db:"cost_per_unit"`
	Supplier    string  `db:"supplier"`
	Description string  `db:"description"`
	CreatedAt   string  `db:"created_at"`
}

func (r materialRow) toDomain() (domain.Material, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Material{}, fmt.Errorf("material %s: %w", r.ID, err)
	}
	return domain.Material{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Category:    domain.MaterialCategory(r.Category),
		CostPerUnit: r.CostPerUnit,
		Supplier:    r.Supplier,
		Description: r.Description,
		CreatedAt:   created,
	}, nil
}

const materialCols = `id, user_id, name, category, cost_per_unit, supplier, description, created_at`

func (r *MaterialRepo) ListMaterials(ownerID string) ([]domain.Material, error) {
	var rows []materialRow
	err := r.db.Select(&rows, `
	  SELECT `+materialCols+`
	  FROM materials
	  WHERE user_id = ? AND deleted_at IS NULL
	  ORDER BY datetime(created_at) DESC, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Material, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MaterialRepo) GetMaterial(ownerID, id string) (domain.Material, error) {
	var row materialRow
	err := r.db.Get(&row, `
	  SELECT `+materialCols+`
	  FROM materials
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Material{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Material{}, err
	}
	return row.toDomain()
}

func (r *MaterialRepo) InsertMaterial(m domain.Material) error {
	_, err := r.db.Exec(`
	  INSERT INTO materials(id, user_id, name, category, cost_per_unit, supplier, description, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.OwnerID, m.Name, string(m.Category), m.CostPerUnit, m.Supplier, m.Description, formatTime(m.CreatedAt))
	return err
}

// UpdateMaterial replaces the full row; partial updates are not supported.
func (r *MaterialRepo) UpdateMaterial(m domain.Material) error {
	res, err := r.db.Exec(`
	  UPDATE materials
	  SET name = ?, category = ?, cost_per_unit = ?, supplier = ?, description = ?
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, m.Name, string(m.Category), m.CostPerUnit, m.Supplier, m.Description, m.ID, m.OwnerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}

// DeleteMaterial tombstones the row. Repeating the delete is a no-op success;
// a row owned by someone else reports not found.
func (r *MaterialRepo) DeleteMaterial(ownerID, id string, now time.Time) error {
	res, err := r.db.Exec(`
	  UPDATE materials SET deleted_at = ?
	  WHERE id = ? AND user_id = ?
	`, formatTime(now), id, ownerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}

func checkOwned(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
