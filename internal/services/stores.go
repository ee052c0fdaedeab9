package services

import (
	"time"

	"inkledger/internal/domain"
)

// Store interfaces are satisfied by both the sqlite repos and the JSON
// filestore; services never know which backend they run against. Every
// operation is owner-scoped and a row belonging to another owner behaves as
// domain.ErrNotFound.

type MaterialStore interface {
	ListMaterials(ownerID string) ([]domain.Material, error)
	GetMaterial(ownerID, id string) (domain.Material, error)
	InsertMaterial(m domain.Material) error
	UpdateMaterial(m domain.Material) error
	DeleteMaterial(ownerID, id string, now time.Time) error
}

type InkStore interface {
	ListInks(ownerID string) ([]domain.Ink, error)
	GetInk(ownerID, id string) (domain.Ink, error)
	InsertInk(i domain.Ink) error
	UpdateInk(i domain.Ink) error
	DeleteInk(ownerID, id string, now time.Time) error
}

type ServiceStore interface {
	ListServices(ownerID string) ([]domain.Service, error)
	GetService(ownerID, id string) (domain.Service, error)
	InsertService(s domain.Service) error
	UpdateService(s domain.Service) error
	DeleteService(ownerID, id string, now time.Time) error
}
