package models

import (
	"math"
	"time"

	"drowsiness-dashboard/internal/domain"
	"drowsiness-dashboard/internal/utils"
)

// TripRecord is one monitored driving session as stored in viaje.
type TripRecord struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	BlinkCount   int       `json:"blinkCount"`
	HeadNodCount int       `json:"headNodCount"`
	YawnCount    int       `json:"yawnCount"`
}

// Column limits of viaje: counters are INT UNSIGNED and hora_viaje is a
// DATETIME, stored in local time.
const (
	MaxCounter  = math.MaxUint32
	MinTripYear = 1000
	MaxTripYear = 9999
)

// TripRecordInput is an unvalidated record as sent by the detector.
type TripRecordInput struct {
	Timestamp    string `json:"timestamp"`
	BlinkCount   int    `json:"blinkCount"`
	HeadNodCount int    `json:"headNodCount"`
	YawnCount    int    `json:"yawnCount"`
}

// Validate checks the counters and parses the timestamp. The returned record
// has no ID yet.
func (in TripRecordInput) Validate() (TripRecord, error) {
	ts, err := utils.ParseTimestamp(in.Timestamp)
	if err != nil {
		return TripRecord{}, domain.ValidationError{Field: "timestamp", Msg: "must be a valid date-time", Err: err}
	}
	if y := ts.In(time.Local).Year(); y < MinTripYear || y > MaxTripYear {
		return TripRecord{}, domain.ValidationError{Field: "timestamp", Msg: "year must be between 1000 and 9999"}
	}
	counters := []struct {
		field string
		value int
	}{
		{"blinkCount", in.BlinkCount},
		{"headNodCount", in.HeadNodCount},
		{"yawnCount", in.YawnCount},
	}
	for _, c := range counters {
		if c.value < 0 {
			return TripRecord{}, domain.ValidationError{Field: c.field, Msg: "must be non-negative"}
		}
		if int64(c.value) > MaxCounter {
			return TripRecord{}, domain.ValidationError{Field: c.field, Msg: "exceeds 4294967295"}
		}
	}
	return TripRecord{
		Timestamp:    ts,
		BlinkCount:   in.BlinkCount,
		HeadNodCount: in.HeadNodCount,
		YawnCount:    in.YawnCount,
	}, nil
}

// TripListingRow is the display projection of a TripRecord.
type TripListingRow struct {
	ID           int64  `json:"id"`
	Timestamp    string `json:"timestamp"`
	BlinkCount   int    `json:"blinkCount"`
	HeadNodCount int    `json:"headNodCount"`
	YawnCount    int    `json:"yawnCount"`
}

// ListingSummary totals the counters of a listing.
type ListingSummary struct {
	Trips         int `json:"trips"`
	TotalBlinks   int `json:"totalBlinks"`
	TotalHeadNods int `json:"totalHeadNods"`
	TotalYawns    int `json:"totalYawns"`
}
