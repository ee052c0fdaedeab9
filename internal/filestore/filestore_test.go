package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"inkledger/internal/domain"
	"inkledger/internal/services"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return New(path), path
}

func TestMissingFile_ServesDefaultCatalog(t *testing.T) {
	s, _ := tempStore(t)

	materials, err := s.ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	inks, err := s.ListInks("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 3 || len(inks) != 4 {
		t.Fatalf("want default 3 materials / 4 inks, got %d / %d", len(materials), len(inks))
	}

	// The ledger starts empty regardless.
	svcs, err := s.ListServices("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(svcs) != 0 {
		t.Fatalf("want empty ledger, got %d", len(svcs))
	}
}

func TestCorruptFile_ServesDefaultCatalog(t *testing.T) {
	s, path := tempStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	materials, err := s.ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 3 {
		t.Fatalf("corrupt blob must fall back to defaults, got %d rows", len(materials))
	}
}

func TestInsert_RoundTripsThroughDisk(t *testing.T) {
	s, path := tempStore(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	m := domain.Material{
		ID: "m1", OwnerID: "owner-a", Name: "VINIL", Category: domain.CategoryVinyl,
		CostPerUnit: 7.5, CreatedAt: now,
	}
	if err := s.InsertMaterial(m); err != nil {
		t.Fatal(err)
	}

	// A fresh store reading the same file sees the row plus the defaults that
	// were seeded alongside the first write.
	reopened := New(path)
	materials, err := reopened.ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(materials) != 4 {
		t.Fatalf("want defaults + inserted row, got %d", len(materials))
	}
	got, err := reopened.GetMaterial("owner-a", "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "VINIL" || !got.CreatedAt.Equal(now) {
		t.Fatalf("round trip mangled the row: %+v", got)
	}
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	s, _ := tempStore(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	m := domain.Material{ID: "m1", OwnerID: "owner-a", Name: "VINIL", Category: domain.CategoryVinyl, CreatedAt: now}
	if err := s.InsertMaterial(m); err != nil {
		t.Fatal(err)
	}

	m.Name = "VINIL FOSCO"
	m.CreatedAt = now.Add(48 * time.Hour) // must be ignored
	if err := s.UpdateMaterial(m); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetMaterial("owner-a", "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "VINIL FOSCO" || !got.CreatedAt.Equal(now) {
		t.Fatalf("update must keep the original timestamp: %+v", got)
	}
}

func TestDelete_TombstoneHidesRow(t *testing.T) {
	s, _ := tempStore(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	sv := domain.Service{ID: "s1", OwnerID: "owner-a", Name: "Banner", SalePrice: 50, CreatedAt: now}
	if err := s.InsertService(sv); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteService("owner-a", "s1", now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListServices("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("tombstoned service still listed: %+v", list)
	}
	if _, err := s.GetService("owner-a", "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("tombstoned service still readable, got %v", err)
	}
	// Repeating the delete is fine; a foreign owner is turned away.
	if err := s.DeleteService("owner-a", "s1", now.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteService("owner-b", "s1", now); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-owner delete must look like not found, got %v", err)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	s, _ := tempStore(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	if err := s.InsertInk(domain.Ink{ID: "i1", OwnerID: "owner-a", Name: "UV", Color: "CMYK", CreatedAt: now}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetInk("owner-b", "i1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign ink must be invisible, got %v", err)
	}
	if err := s.UpdateInk(domain.Ink{ID: "i1", OwnerID: "owner-b", Name: "STOLEN", Color: "K"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("foreign update must fail closed, got %v", err)
	}
}

// A read against a missing file materializes the reader's defaults on disk;
// a later write by another owner must not erase them.
func TestDefaultCatalog_SurvivesOtherOwnersWrites(t *testing.T) {
	s, path := tempStore(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := s.ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 3 {
		t.Fatalf("want 3 default materials, got %d", len(first))
	}

	if err := s.InsertMaterial(domain.Material{
		ID: "b1", OwnerID: "owner-b", Name: "VINIL", Category: domain.CategoryVinyl, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	after, err := s.ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 3 {
		t.Fatalf("owner-a's default catalog disappeared: %d materials after owner-b's write", len(after))
	}
	// The defaults are on disk, not recomputed per read.
	reopened, err := New(path).ListMaterials("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(reopened) != 3 || reopened[0].ID != after[0].ID {
		t.Fatalf("owner-a's defaults not persisted: %+v", reopened)
	}
}

// Registration-style seeding for two accounts sharing one data file.
func TestSeedDefaults_TwoOwnersOnOneFile(t *testing.T) {
	s, _ := tempStore(t)
	catalog := services.NewCatalogService(s, s)

	if err := catalog.SeedDefaults("owner-a"); err != nil {
		t.Fatal(err)
	}
	if err := catalog.SeedDefaults("owner-b"); err != nil {
		t.Fatalf("second owner seed failed: %v", err)
	}

	for _, owner := range []string{"owner-a", "owner-b"} {
		materials, err := s.ListMaterials(owner)
		if err != nil {
			t.Fatal(err)
		}
		inks, err := s.ListInks(owner)
		if err != nil {
			t.Fatal(err)
		}
		if len(materials) != 3 || len(inks) != 4 {
			t.Fatalf("%s: want 3 materials / 4 inks, got %d / %d", owner, len(materials), len(inks))
		}
	}
}

func TestList_SortsNewestFirst(t *testing.T) {
	s, _ := tempStore(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		sv := domain.Service{ID: id, OwnerID: "owner-a", Name: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.InsertService(sv); err != nil {
			t.Fatal(err)
		}
	}
	list, err := s.ListServices("owner-a")
	if err != nil {
		t.Fatal(err)
	}
	if list[0].ID != "new" || list[2].ID != "old" {
		t.Fatalf("want newest first, got %v %v %v", list[0].ID, list[1].ID, list[2].ID)
	}
}
