package handlers

import (
	"context"
	"fmt"
	"net/http"

	"drowsiness-dashboard/internal/domain"
	"drowsiness-dashboard/internal/domain/models"
	"drowsiness-dashboard/internal/http/middleware"
	"drowsiness-dashboard/internal/services"
	"drowsiness-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type TripStore interface {
	services.TripLister
	Insert(ctx context.Context, in models.TripRecordInput) (models.TripRecord, error)
}

// TripHandler serves the trip listing. Every route is mounted behind
// middleware.RequireSession.
type TripHandler struct {
	Store TripStore
}

func (h TripHandler) listing(c *gin.Context) services.TripListingService {
	svc := services.NewTripListingService(h.Store)
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

type tripListingResponse struct {
	Data    []models.TripListingRow `json:"data"`
	Summary models.ListingSummary   `json:"summary"`
}

// GET /api/trips
func (h TripHandler) ListTrips(c *gin.Context) {
	rows, err := h.listing(c).GetTripListing(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tripListingResponse{Data: rows, Summary: services.Summarize(rows)})
}

// POST /api/trips
func (h TripHandler) CreateTrip(c *gin.Context) {
	var in models.TripRecordInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := h.Store.Insert(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "create", fmt.Sprintf("id=%d", rec.ID))
	c.JSON(http.StatusCreated, services.ToListingRows([]models.TripRecord{rec})[0])
}

// GET /api/trips/report.pdf
func (h TripHandler) TripsReportPDF(c *gin.Context) {
	svc := services.TripReportService{Listing: h.listing(c), RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateListingPDF(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /trips
func (h TripHandler) TripsPage(c *gin.Context) {
	rows, err := h.listing(c).GetTripListing(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Could not load trips."
		if domain.IsStorageUnavailable(err) {
			status = http.StatusServiceUnavailable
			msg = "Trip storage is unavailable, try again later."
		}
		c.HTML(status, tripsPageName, tripsPageData{Error: msg, RequestID: middleware.GetRequestID(c)})
		return
	}
	c.HTML(http.StatusOK, tripsPageName, tripsPageData{Rows: rows, Summary: services.Summarize(rows)})
}
