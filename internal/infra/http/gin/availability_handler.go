package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	appavailability "github.com/dev-master21/nova-site-sub000/internal/app/availability"
	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// AvailabilityHandler exposes the availability core over HTTP. All user
// input validation happens here; the domain functions only ever see
// well-formed requests.
type AvailabilityHandler struct {
	Service      *appavailability.Service
	Orchestrator *appavailability.Orchestrator
	Pricing      appavailability.PriceQuoter

	// DefaultLimit caps slot responses when the request leaves limit unset.
	DefaultLimit int
}

// Calendar responds with the merged month grid for a property.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	propertyID := c.Param("id")
	year, month, ok := h.resolveMonth(c.Query("year"), c.Query("month"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must form a valid calendar month"})
		return
	}
	cal, err := h.Service.Calendar(c.Request.Context(), propertyID, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

type findSlotsRequest struct {
	SearchMode  string `json:"search_mode" binding:"required,oneof=month period"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	NightsCount int    `json:"nights_count" binding:"required,min=1"`
	Limit       int    `json:"limit"`
}

func (r findSlotsRequest) window() (domain.SearchWindow, error) {
	w := domain.SearchWindow{Nights: r.NightsCount, Limit: r.Limit}
	switch r.SearchMode {
	case "month":
		w.Mode = domain.SearchByMonth
		w.Year = r.Year
		w.Month = time.Month(r.Month)
	case "period":
		w.Mode = domain.SearchByPeriod
		start, okStart := calendar.ParseDate(r.StartDate)
		end, okEnd := calendar.ParseDate(r.EndDate)
		if !okStart || !okEnd {
			return domain.SearchWindow{}, domain.ErrInvalidWindow
		}
		w.Start, w.End = start, end
	}
	if _, _, err := w.Bounds(); err != nil {
		return domain.SearchWindow{}, err
	}
	return w, nil
}

// FindSlots runs the slot finder for an explicit window or a whole month.
func (h AvailabilityHandler) FindSlots(c *gin.Context) {
	var req findSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := req.window()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if w.Limit <= 0 {
		w.Limit = h.DefaultLimit
	}
	slots, err := h.Service.FindSlots(c.Request.Context(), c.Param("id"), w)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

type checkPeriodRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	NightsCount int    `json:"nights_count" binding:"required,min=1"`
}

func (r checkPeriodRequest) bounds() (calendar.Date, calendar.Date, bool) {
	start, okStart := calendar.ParseDate(r.StartDate)
	end, okEnd := calendar.ParseDate(r.EndDate)
	if !okStart || !okEnd || end <= start {
		return "", "", false
	}
	return start, end, true
}

// CheckPeriod classifies a requested stay against the property occupancy.
func (h AvailabilityHandler) CheckPeriod(c *gin.Context) {
	var req checkPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := req.bounds()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}
	report, err := h.Service.CheckPeriod(c.Request.Context(), c.Param("id"), start, end, req.NightsCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Alternatives fans the search out over sibling properties when the
// requested stay does not fit the current one.
func (h AvailabilityHandler) Alternatives(c *gin.Context) {
	var req checkPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, ok := req.bounds()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}
	result, err := h.Orchestrator.FindAlternatives(c.Request.Context(), c.Param("id"), domain.SearchWindow{
		Mode:   domain.SearchByPeriod,
		Start:  start,
		End:    end,
		Nights: req.NightsCount,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type priceRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

// Price proxies a quote request to the pricing collaborator.
func (h AvailabilityHandler) Price(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, okIn := calendar.ParseDate(req.CheckIn)
	checkOut, okOut := calendar.ParseDate(req.CheckOut)
	if !okIn || !okOut || checkOut <= checkIn {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be after check_in"})
		return
	}
	quote, err := h.Pricing.Quote(c.Request.Context(), c.Param("id"), checkIn, checkOut)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// resolveMonth defaults to the current Bangkok month when the query omits
// year/month.
func (h AvailabilityHandler) resolveMonth(yearRaw, monthRaw string) (int, int, bool) {
	if yearRaw == "" && monthRaw == "" {
		today := h.Service.Clock.Today()
		t, _ := today.Time()
		return t.Year(), int(t.Month()), true
	}
	year, errYear := strconv.Atoi(yearRaw)
	month, errMonth := strconv.Atoi(monthRaw)
	if errYear != nil || errMonth != nil || year < 1 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appavailability.ErrPropertyRequired),
		errors.Is(err, domain.ErrInvalidNights),
		errors.Is(err, domain.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ AvailabilityHTTP = AvailabilityHandler{}
