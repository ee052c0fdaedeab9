package handlers

import (
	"github.com/jmoiron/sqlx"

	"inkledger/internal/config"
	"inkledger/internal/filestore"
	"inkledger/internal/repos"
	"inkledger/internal/services"
)

type Deps struct {
	Catalog *services.CatalogService
	Ledger  *services.LedgerService
	Reports *services.ReportService

	DashboardHandler *DashboardHandler
	MaterialHandler  *MaterialHandler
	InkHandler       *InkHandler
	ServiceHandler   *ServiceHandler
	ReportHandler    *ReportHandler
}

// NewDeps wires stores, services and handlers. STORE=file swaps catalog and
// ledger rows to the JSON data file; identity always lives in sqlite.
func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	var (
		materials services.MaterialStore
		inks      services.InkStore
		svcs      services.ServiceStore
	)
	if cfg.Store == "file" {
		fs := filestore.New(cfg.DataFile)
		materials, inks, svcs = fs, fs, fs
	} else {
		materials = repos.NewMaterialRepo(db)
		inks = repos.NewInkRepo(db)
		svcs = repos.NewServiceRepo(db)
	}

	catalog := services.NewCatalogService(materials, inks)
	ledger := services.NewLedgerService(svcs, materials, inks)
	reports := services.NewReportService(svcs)

	return &Deps{
		Catalog: catalog,
		Ledger:  ledger,
		Reports: reports,

		DashboardHandler: &DashboardHandler{Ledger: ledger, Reports: reports},
		MaterialHandler:  &MaterialHandler{Catalog: catalog},
		InkHandler:       &InkHandler{Catalog: catalog},
		ServiceHandler:   &ServiceHandler{Ledger: ledger, Catalog: catalog},
		ReportHandler:    &ReportHandler{Reports: reports},
	}
}
