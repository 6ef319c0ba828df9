package services

import (
	"context"
	"fmt"

	"drowsiness-dashboard/internal/domain/models"
	"drowsiness-dashboard/internal/utils"
)

// TripLister is the read side of the trip store.
type TripLister interface {
	ListAll(ctx context.Context) ([]models.TripRecord, error)
}

// TripListingService turns the store's full scan into display rows. It is
// read-only and does not check credentials; callers must pass the
// authentication gate before reaching it.
type TripListingService struct {
	Store     TripLister
	RequestID string
}

func NewTripListingService(store TripLister) TripListingService {
	return TripListingService{Store: store}
}

// GetTripListing returns one row per stored trip in store order. Store errors
// are returned unchanged.
func (s TripListingService) GetTripListing(ctx context.Context) ([]models.TripListingRow, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		utils.LogEvent(s.RequestID, "trips", "list", "store error: "+err.Error())
		return nil, err
	}
	rows := ToListingRows(records)
	utils.LogEvent(s.RequestID, "trips", "list", fmt.Sprintf("rows=%d", len(rows)))
	return rows, nil
}

// ToListingRows projects records without reordering them.
func ToListingRows(records []models.TripRecord) []models.TripListingRow {
	rows := make([]models.TripListingRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.TripListingRow{
			ID:           rec.ID,
			Timestamp:    utils.FormatDateTime(rec.Timestamp),
			BlinkCount:   rec.BlinkCount,
			HeadNodCount: rec.HeadNodCount,
			YawnCount:    rec.YawnCount,
		})
	}
	return rows
}

func Summarize(rows []models.TripListingRow) models.ListingSummary {
	sum := models.ListingSummary{Trips: len(rows)}
	for _, r := range rows {
		sum.TotalBlinks += r.BlinkCount
		sum.TotalHeadNods += r.HeadNodCount
		sum.TotalYawns += r.YawnCount
	}
	return sum
}
