// Package filestore persists catalog and ledger rows in a single JSON data
// file, the local-only alternative to the relational store. Reads fall back
// to the default catalog when the file is missing or unreadable; writes
// replace the whole blob atomically.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"inkledger/internal/domain"
	"inkledger/internal/seed"
)

type fileData struct {
	Services  []domain.Service  `json:"services"`
	Materials []domain.Material `json:"materials"`
	Inks      []domain.Ink      `json:"inks"`
}

type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// load returns the decoded blob and whether it came from disk. A missing or
// corrupt file is not an error; callers fall back to the default catalog.
func (s *Store) load() (fileData, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fileData{}, false
	}
	var d fileData
	if err := json.Unmarshal(b, &d); err != nil {
		return fileData{}, false
	}
	return d, true
}

func (s *Store) save(d fileData) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// defaultsFor is a fresh blob holding the owner's default catalog.
func defaultsFor(ownerID string, now time.Time) fileData {
	return fileData{
		Materials: seed.Materials(ownerID, now),
		Inks:      seed.Inks(ownerID, now),
	}
}

// loadForRead returns the blob, materializing the default catalog for the
// owner when no usable blob exists. The seeded blob is written back so the
// owner's defaults survive writes made by other owners.
func (s *Store) loadForRead(ownerID string) fileData {
	d, ok := s.load()
	if !ok {
		d = defaultsFor(ownerID, s.now())
		// best effort; the read still serves the defaults
		_ = s.save(d)
	}
	return d
}

// loadForWrite seeds the default catalog for the owner when no usable blob
// exists yet; the caller's save persists it.
func (s *Store) loadForWrite(ownerID string) fileData {
	d, ok := s.load()
	if !ok {
		d = defaultsFor(ownerID, s.now())
	}
	return d
}

// ---------- Materials ----------

func (s *Store) ListMaterials(ownerID string) ([]domain.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForRead(ownerID)
	out := make([]domain.Material, 0)
	for _, m := range d.Materials {
		if m.OwnerID == ownerID && m.DeletedAt == nil {
			out = append(out, m)
		}
	}
	sortByCreatedDesc(out, func(m domain.Material) time.Time { return m.CreatedAt })
	return out, nil
}

func (s *Store) GetMaterial(ownerID, id string) (domain.Material, error) {
	ms, err := s.ListMaterials(ownerID)
	if err != nil {
		return domain.Material{}, err
	}
	for _, m := range ms {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Material{}, domain.ErrNotFound
}

func (s *Store) InsertMaterial(m domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(m.OwnerID)
	d.Materials = append(d.Materials, m)
	return s.save(d)
}

func (s *Store) UpdateMaterial(m domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(m.OwnerID)
	for i, cur := range d.Materials {
		if cur.ID == m.ID && cur.OwnerID == m.OwnerID && cur.DeletedAt == nil {
			m.CreatedAt = cur.CreatedAt
			d.Materials[i] = m
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteMaterial(ownerID, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(ownerID)
	for i, cur := range d.Materials {
		if cur.ID == id && cur.OwnerID == ownerID {
			t := now
			d.Materials[i].DeletedAt = &t
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

// ---------- Inks ----------

func (s *Store) ListInks(ownerID string) ([]domain.Ink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForRead(ownerID)
	out := make([]domain.Ink, 0)
	for _, i := range d.Inks {
		if i.OwnerID == ownerID && i.DeletedAt == nil {
			out = append(out, i)
		}
	}
	sortByCreatedDesc(out, func(i domain.Ink) time.Time { return i.CreatedAt })
	return out, nil
}

func (s *Store) GetInk(ownerID, id string) (domain.Ink, error) {
	inks, err := s.ListInks(ownerID)
	if err != nil {
		return domain.Ink{}, err
	}
	for _, i := range inks {
		if i.ID == id {
			return i, nil
		}
	}
	return domain.Ink{}, domain.ErrNotFound
}

func (s *Store) InsertInk(i domain.Ink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(i.OwnerID)
	d.Inks = append(d.Inks, i)
	return s.save(d)
}

func (s *Store) UpdateInk(i domain.Ink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(i.OwnerID)
	for idx, cur := range d.Inks {
		if cur.ID == i.ID && cur.OwnerID == i.OwnerID && cur.DeletedAt == nil {
			i.CreatedAt = cur.CreatedAt
			d.Inks[idx] = i
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteInk(ownerID, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(ownerID)
	for i, cur := range d.Inks {
		if cur.ID == id && cur.OwnerID == ownerID {
			t := now
			d.Inks[i].DeletedAt = &t
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

// ---------- Services ----------

func (s *Store) ListServices(ownerID string) ([]domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForRead(ownerID)
	out := make([]domain.Service, 0)
	for _, sv := range d.Services {
		if sv.OwnerID == ownerID && sv.DeletedAt == nil {
			out = append(out, sv)
		}
	}
	sortByCreatedDesc(out, func(sv domain.Service) time.Time { return sv.CreatedAt })
	return out, nil
}

func (s *Store) GetService(ownerID, id string) (domain.Service, error) {
	svcs, err := s.ListServices(ownerID)
	if err != nil {
		return domain.Service{}, err
	}
	for _, sv := range svcs {
		if sv.ID == id {
			return sv, nil
		}
	}
	return domain.Service{}, domain.ErrNotFound
}

func (s *Store) InsertService(sv domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(sv.OwnerID)
	d.Services = append(d.Services, sv)
	return s.save(d)
}

func (s *Store) UpdateService(sv domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(sv.OwnerID)
	for i, cur := range d.Services {
		if cur.ID == sv.ID && cur.OwnerID == sv.OwnerID && cur.DeletedAt == nil {
			sv.CreatedAt = cur.CreatedAt
			d.Services[i] = sv
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteService(ownerID, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.loadForWrite(ownerID)
	for i, cur := range d.Services {
		if cur.ID == id && cur.OwnerID == ownerID {
			t := now
			d.Services[i].DeletedAt = &t
			return s.save(d)
		}
	}
	return domain.ErrNotFound
}

func sortByCreatedDesc[T any](rows []T, created func(T) time.Time) {
	sort.Slice(rows, func(i, j int) bool { return created(rows[i]).After(created(rows[j])) })
}
