package services

import (
	"inkledger/internal/reports"
)

// ReportService folds an owner's ledger into summaries and export documents.
type ReportService struct {
	Services ServiceStore
}

func NewReportService(svcs ServiceStore) *ReportService {
	return &ReportService{Services: svcs}
}

func (s *ReportService) Summary(ownerID string, r reports.Range) (reports.Summary, error) {
	svcs, err := s.Services.ListServices(ownerID)
	if err != nil {
		return reports.Summary{}, err
	}
	return reports.Summarize(svcs, r), nil
}

func (s *ReportService) ExportCSV(ownerID string, r reports.Range) ([]byte, error) {
	svcs, err := s.Services.ListServices(ownerID)
	if err != nil {
		return nil, err
	}
	return reports.CSV(svcs, r), nil
}

func (s *ReportService) ExportExcel(ownerID string, r reports.Range) ([]byte, error) {
	svcs, err := s.Services.ListServices(ownerID)
	if err != nil {
		return nil, err
	}
	return reports.Excel(svcs, r)
}
