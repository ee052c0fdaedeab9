// Package seed holds the default catalog every new account starts with.
package seed

import (
	"time"

	"github.com/google/uuid"

	"inkledger/internal/domain"
)

// Materials returns the three default materials for an owner. Identifiers are
// generated per call; rows for different owners never collide.
func Materials(ownerID string, now time.Time) []domain.Material {
	return []domain.Material{
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "LONA 440G",
			Category:    domain.CategoryCanvas,
			CostPerUnit: 12.50,
			Supplier:    "Fornecedor Padrão",
			Description: "Lona 440g para impressão digital",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "ADESIVO FOSCO",
			Category:    domain.CategorySticker,
			CostPerUnit: 8.90,
			Supplier:    "Fornecedor Padrão",
			Description: "Adesivo fosco para aplicação",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "TECIDO DRY FIT",
			Category:    domain.CategoryFabric,
			CostPerUnit: 18.00,
			Supplier:    "Fornecedor Padrão",
			Description: "Tecido dry fit para impressão",
			CreatedAt:   now,
		},
	}
}

// Inks returns the four default inks for an owner.
func Inks(ownerID string, now time.Time) []domain.Ink {
	return []domain.Ink{
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "TINTA JETBEST NOVA ECO PREMIUM",
			Color:       "CMYK",
			CostPerML:   0.48,
			Supplier:    "JetBest",
			Description: "Tinta eco premium para impressão digital",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "TINTA JETBEST SOLVENTE DX SILVER",
			Color:       "Prata",
			CostPerML:   0.24,
			Supplier:    "JetBest",
			Description: "Tinta solvente DX Silver",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "TINTA JETBEST SUBLIMAÇÃO TX",
			Color:       "CMYK",
			CostPerML:   0.19,
			Supplier:    "JetBest",
			Description: "Tinta para sublimação TX",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Name:        "TINTA JETBEST UV",
			Color:       "CMYK + Branco",
			CostPerML:   0.97,
			Supplier:    "JetBest",
			Description: "Tinta UV para diversos materiais",
			CreatedAt:   now,
		},
	}
}
