package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"inkledger/internal/domain"
	"inkledger/internal/seed"
)

// CatalogService owns the material and ink CRUD rules: upsert keyed by
// identifier, full-row replacement, tombstone delete.
type CatalogService struct {
	Materials MaterialStore
	Inks      InkStore

	// Now is swappable in tests; zero value means time.Now.
	Now func() time.Time
}

func NewCatalogService(materials MaterialStore, inks InkStore) *CatalogService {
	return &CatalogService{Materials: materials, Inks: inks}
}

func (s *CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CatalogService) ListMaterials(ownerID string) ([]domain.Material, error) {
	return s.Materials.ListMaterials(ownerID)
}

// SaveMaterial upserts by identifier: a matching owned row is replaced
// wholesale with its CreatedAt preserved, anything else becomes a new row
// with a fresh identifier and timestamp.
func (s *CatalogService) SaveMaterial(ownerID string, m domain.Material) (domain.Material, error) {
	if m.Name == "" {
		return domain.Material{}, invalid("name", "name is required")
	}
	if !m.Category.Valid() {
		return domain.Material{}, invalid("category", "unknown category")
	}
	if m.CostPerUnit < 0 {
		return domain.Material{}, invalid("costPerUnit", "cost must not be negative")
	}
	m.OwnerID = ownerID

	if m.ID != "" {
		existing, err := s.Materials.GetMaterial(ownerID, m.ID)
		switch {
		case err == nil:
			m.CreatedAt = existing.CreatedAt
			return m, s.Materials.UpdateMaterial(m)
		case !errors.Is(err, domain.ErrNotFound):
			return domain.Material{}, err
		}
	}

	m.ID = uuid.NewString()
	m.CreatedAt = s.now()
	return m, s.Materials.InsertMaterial(m)
}

func (s *CatalogService) DeleteMaterial(ownerID, id string) error {
	return s.Materials.DeleteMaterial(ownerID, id, s.now())
}

func (s *CatalogService) ListInks(ownerID string) ([]domain.Ink, error) {
	return s.Inks.ListInks(ownerID)
}

func (s *CatalogService) SaveInk(ownerID string, i domain.Ink) (domain.Ink, error) {
	if i.Name == "" {
		return domain.Ink{}, invalid("name", "name is required")
	}
	if i.Color == "" {
		return domain.Ink{}, invalid("color", "color is required")
	}
	if i.CostPerML < 0 {
		return domain.Ink{}, invalid("costPerMl", "cost must not be negative")
	}
	i.OwnerID = ownerID

	if i.ID != "" {
		existing, err := s.Inks.GetInk(ownerID, i.ID)
		switch {
		case err == nil:
			i.CreatedAt = existing.CreatedAt
			return i, s.Inks.UpdateInk(i)
		case !errors.Is(err, domain.ErrNotFound):
			return domain.Ink{}, err
		}
	}

	i.ID = uuid.NewString()
	i.CreatedAt = s.now()
	return i, s.Inks.InsertInk(i)
}

func (s *CatalogService) DeleteInk(ownerID, id string) error {
	return s.Inks.DeleteInk(ownerID, id, s.now())
}

// SeedDefaults gives a new owner the default catalog. Existing rows are left
// alone so it is safe to call again.
func (s *CatalogService) SeedDefaults(ownerID string) error {
	existing, err := s.Materials.ListMaterials(ownerID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, m := range seed.Materials(ownerID, s.now()) {
			if err := s.Materials.InsertMaterial(m); err != nil {
				return err
			}
		}
	}

	inks, err := s.Inks.ListInks(ownerID)
	if err != nil {
		return err
	}
	if len(inks) == 0 {
		for _, i := range seed.Inks(ownerID, s.now()) {
			if err := s.Inks.InsertInk(i); err != nil {
				return err
			}
		}
	}
	return nil
}
