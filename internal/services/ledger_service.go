package services

import (
	"time"

	"github.com/google/uuid"

	"inkledger/internal/domain"
	"inkledger/internal/pricing"
)

// ServiceInput is what a caller may supply when recording a print job.
// Derived figures (total cost, profit, margin) are deliberately absent: the
// ledger always recomputes them from the catalog and never trusts a client.
type ServiceInput struct {
	Name        string
	MaterialID  string
	MaterialQty float64
	InkID       string
	InkQty      float64
	OtherCosts  []domain.CostLine
	SalePrice   float64
}

// LedgerService records print jobs. On every write it resolves the selected
// catalog rows, snapshots their name and cost, and derives the totals through
// the pricing calculator.
type LedgerService struct {
	Services  ServiceStore
	Materials MaterialStore
	Inks      InkStore

	Now func() time.Time
}

func NewLedgerService(svcs ServiceStore, materials MaterialStore, inks InkStore) *LedgerService {
	return &LedgerService{Services: svcs, Materials: materials, Inks: inks}
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LedgerService) List(ownerID string) ([]domain.Service, error) {
	return s.Services.ListServices(ownerID)
}

func (s *LedgerService) Get(ownerID, id string) (domain.Service, error) {
	return s.Services.GetService(ownerID, id)
}

// Quote computes the live cost preview for the current form state. Missing
// selections contribute zero cost; nothing is validated or persisted here.
func (s *LedgerService) Quote(ownerID string, in ServiceInput) (pricing.Quote, error) {
	priceIn := pricing.Input{SalePrice: in.SalePrice}
	for _, line := range in.OtherCosts {
		priceIn.OtherCosts = append(priceIn.OtherCosts, line.Value)
	}

	if in.MaterialID != "" {
		m, err := s.Materials.GetMaterial(ownerID, in.MaterialID)
		if err != nil {
			return pricing.Quote{}, err
		}
		priceIn.MaterialUnitCost = m.CostPerUnit
		priceIn.MaterialQuantity = in.MaterialQty
	}
	if in.InkID != "" {
		i, err := s.Inks.GetInk(ownerID, in.InkID)
		if err != nil {
			return pricing.Quote{}, err
		}
		priceIn.InkUnitCost = i.CostPerML
		priceIn.InkQuantity = in.InkQty
	}
	return pricing.Calculate(priceIn), nil
}

// Create records a new service. Name, material and ink selections are
// mandatory; the snapshot is taken from the catalog as it stands now and is
// never touched by later catalog edits.
func (s *LedgerService) Create(ownerID string, in ServiceInput) (domain.Service, error) {
	svc, err := s.build(ownerID, in)
	if err != nil {
		return domain.Service{}, err
	}
	svc.ID = uuid.NewString()
	svc.CreatedAt = s.now()
	return svc, s.Services.InsertService(svc)
}

// Update re-records an existing service with the same derivation rules as
// Create. The record date is preserved.
func (s *LedgerService) Update(ownerID, id string, in ServiceInput) (domain.Service, error) {
	existing, err := s.Services.GetService(ownerID, id)
	if err != nil {
		return domain.Service{}, err
	}
	svc, err := s.build(ownerID, in)
	if err != nil {
		return domain.Service{}, err
	}
	svc.ID = existing.ID
	svc.CreatedAt = existing.CreatedAt
	return svc, s.Services.UpdateService(svc)
}

func (s *LedgerService) Delete(ownerID, id string) error {
	return s.Services.DeleteService(ownerID, id, s.now())
}

func (s *LedgerService) build(ownerID string, in ServiceInput) (domain.Service, error) {
	if in.Name == "" {
		return domain.Service{}, invalid("name", "name is required")
	}
	if in.MaterialID == "" {
		return domain.Service{}, invalid("material", "material is required")
	}
	if in.InkID == "" {
		return domain.Service{}, invalid("ink", "ink is required")
	}
	if in.MaterialQty < 0 {
		return domain.Service{}, invalid("materialQuantity", "quantity must not be negative")
	}
	if in.InkQty < 0 {
		return domain.Service{}, invalid("inkQuantity", "quantity must not be negative")
	}
	if in.SalePrice < 0 {
		return domain.Service{}, invalid("salePrice", "sale price must not be negative")
	}

	material, err := s.Materials.GetMaterial(ownerID, in.MaterialID)
	if err != nil {
		return domain.Service{}, invalid("material", "unknown material")
	}
	ink, err := s.Inks.GetInk(ownerID, in.InkID)
	if err != nil {
		return domain.Service{}, invalid("ink", "unknown ink")
	}

	priceIn := pricing.Input{
		MaterialUnitCost: material.CostPerUnit,
		MaterialQuantity: in.MaterialQty,
		InkUnitCost:      ink.CostPerML,
		InkQuantity:      in.InkQty,
		SalePrice:        in.SalePrice,
	}
	lines := make([]domain.CostLine, 0, len(in.OtherCosts))
	for _, line := range in.OtherCosts {
		if line.Description == "" && line.Value == 0 {
			continue
		}
		lines = append(lines, line)
		priceIn.OtherCosts = append(priceIn.OtherCosts, line.Value)
	}

	q := pricing.Calculate(priceIn)

	return domain.Service{
		OwnerID: ownerID,
		Name:    in.Name,
		Material: domain.Snapshot{
			ID:       material.ID,
			Name:     material.Name,
			Quantity: in.MaterialQty,
			Cost:     q.MaterialCost,
		},
		Ink: domain.Snapshot{
			ID:       ink.ID,
			Name:     ink.Name,
			Quantity: in.InkQty,
			Cost:     q.InkCost,
		},
		OtherCosts: lines,
		TotalCost:  q.TotalCost,
		SalePrice:  in.SalePrice,
		Profit:     q.Profit,
		Margin:     q.Margin,
	}, nil
}
