package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"drowsiness-dashboard/internal/domain"
	"drowsiness-dashboard/internal/domain/models"
)

func TestGenerateListingPDF(t *testing.T) {
	store := &stubLister{records: []models.TripRecord{
		{ID: 1, Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), BlinkCount: 12, HeadNodCount: 3, YawnCount: 1},
		{ID: 2, Timestamp: time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local), BlinkCount: 4, HeadNodCount: 0, YawnCount: 0},
	}}
	svc := TripReportService{
		Listing: NewTripListingService(store),
		Now:     func() time.Time { return time.Date(2024, 1, 3, 10, 30, 0, 0, time.Local) },
	}

	pdf, filename, err := svc.GenerateListingPDF(context.Background())
	if err != nil {
		t.Fatalf("GenerateListingPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}
	if filename != "TRIPS_20240103_103000.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateListingPDFEmpty(t *testing.T) {
	svc := TripReportService{Listing: NewTripListingService(&stubLister{records: []models.TripRecord{}})}
	pdf, filename, err := svc.GenerateListingPDF(context.Background())
	if err != nil {
		t.Fatalf("empty listing must still render: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateListingPDF returned empty data")
	}
}

func TestGenerateListingPDFPropagatesStoreError(t *testing.T) {
	svc := TripReportService{Listing: NewTripListingService(&stubLister{err: domain.StorageUnavailableError{Err: errors.New("down")}})}
	if _, _, err := svc.GenerateListingPDF(context.Background()); !domain.IsStorageUnavailable(err) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}
