package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"inkledger/internal/domain"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

type serviceRow struct {
	ID           string  `db:"id"`
	OwnerID      string  `db:"user_id"`
	Name         string  `db:"name"`
	MaterialID   string  `db:"material_id"`
	MaterialName string  `db:"material_name"`
	MaterialQty  float64 `db:"material_qty"`
	MaterialCost float64 `db:"material_cost"`
	InkID        string  `db:"ink_id"`
	InkName      string  `db:"ink_name"`
	InkQty       float64 `db:"ink_qty"`
	InkCost      float64 `db:"ink_cost"`
	OtherCosts   string  `db:"other_costs"`
	TotalCost    float64 `db:"total_cost"`
	SalePrice    float64 `db:"sale_price"`
	Profit       float64 `db:"profit"`
	Margin       float64 `db:"margin"`
	CreatedAt    string  `db:"created_at"`
}

func (r serviceRow) toDomain() (domain.Service, error) {
	var lines []domain.CostLine
	if r.OtherCosts != "" {
		if err := json.Unmarshal([]byte(r.OtherCosts), &lines); err != nil {
			return domain.Service{}, fmt.Errorf("decode other costs for %s: %w", r.ID, err)
		}
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.Service{}, fmt.Errorf("service %s: %w", r.ID, err)
	}
	return domain.Service{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Name:       r.Name,
		Material:   domain.Snapshot{ID: r.MaterialID, Name: r.MaterialName, Quantity: r.MaterialQty, Cost: r.MaterialCost},
		Ink:        domain.Snapshot{ID: r.InkID, Name: r.InkName, Quantity: r.InkQty, Cost: r.InkCost},
		OtherCosts: lines,
		TotalCost:  r.TotalCost,
		SalePrice:  r.SalePrice,
		Profit:     r.Profit,
		Margin:     r.Margin,
		CreatedAt:  created,
	}, nil
}

const serviceCols = `id, user_id, name,
  material_id, material_name, material_qty, material_cost,
  ink_id, ink_name, ink_qty, ink_cost,
  other_costs, total_cost, sale_price, profit, margin, created_at`

func (r *ServiceRepo) ListServices(ownerID string) ([]domain.Service, error) {
	var rows []serviceRow
	err := r.db.Select(&rows, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE user_id = ? AND deleted_at IS NULL
	  ORDER BY datetime(created_at) DESC, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *ServiceRepo) GetService(ownerID, id string) (domain.Service, error) {
	var row serviceRow
	err := r.db.Get(&row, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Service{}, err
	}
	return row.toDomain()
}

func (r *ServiceRepo) InsertService(s domain.Service) error {
	other, err := encodeCostLines(s.OtherCosts)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO services(id, user_id, name,
	    material_id, material_name, material_qty, material_cost,
	    ink_id, ink_name, ink_qty, ink_cost,
	    other_costs, total_cost, sale_price, profit, margin, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.OwnerID, s.Name,
		s.Material.ID, s.Material.Name, s.Material.Quantity, s.Material.Cost,
		s.Ink.ID, s.Ink.Name, s.Ink.Quantity, s.Ink.Cost,
		other, s.TotalCost, s.SalePrice, s.Profit, s.Margin, formatTime(s.CreatedAt))
	return err
}

func (r *ServiceRepo) UpdateService(s domain.Service) error {
	other, err := encodeCostLines(s.OtherCosts)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(`
	  UPDATE services
	  SET name = ?,
	      material_id = ?, material_name = ?, material_qty = ?, material_cost = ?,
	      ink_id = ?, ink_name = ?, ink_qty = ?, ink_cost = ?,
	      other_costs = ?, total_cost = ?, sale_price = ?, profit = ?, margin = ?
	  WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, s.Name,
		s.Material.ID, s.Material.Name, s.Material.Quantity, s.Material.Cost,
		s.Ink.ID, s.Ink.Name, s.Ink.Quantity, s.Ink.Cost,
		other, s.TotalCost, s.SalePrice, s.Profit, s.Margin,
		s.ID, s.OwnerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}

func (r *ServiceRepo) DeleteService(ownerID, id string, now time.Time) error {
	res, err := r.db.Exec(`
	  UPDATE services SET deleted_at = ?
	  WHERE id = ? AND user_id = ?
	`, formatTime(now), id, ownerID)
	if err != nil {
		return err
	}
	return checkOwned(res)
}

func encodeCostLines(lines []domain.CostLine) (string, error) {
	if lines == nil {
		lines = []domain.CostLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode other costs: %w", err)
	}
	return string(b), nil
}
