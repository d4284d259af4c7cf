package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	appavailability "github.com/dev-master21/nova-site-sub000/internal/app/availability"
	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// AdminHandler backs the booking dashboard: inspecting a property's stays
// and managing its blocked days.
type AdminHandler struct {
	Blocked  appavailability.BlockedStore
	Bookings appavailability.BookingStore
}

func (h AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	type bookingView struct {
		CheckIn  calendar.Date `json:"check_in"`
		CheckOut calendar.Date `json:"check_out"`
		Nights   int           `json:"nights"`
	}
	items := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingView{CheckIn: b.CheckIn, CheckOut: b.CheckOut, Nights: b.Nights()})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h AdminHandler) ListBlockedDates(c *gin.Context) {
	records, err := h.Blocked.ListBlocked(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	type blockedView struct {
		Date   calendar.Date `json:"blocked_date"`
		Reason string        `json:"reason,omitempty"`
	}
	items := make([]blockedView, 0, len(records))
	for _, rec := range records {
		items = append(items, blockedView{Date: rec.Date, Reason: rec.Reason})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateBlockedDate accepts the same loose payload the upstream calendar
// sync uses: the day may arrive under blocked_date or date.
func (h AdminHandler) CreateBlockedDate(c *gin.Context) {
	var rec domain.BlockedRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !rec.Date.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blocked_date must be a YYYY-MM-DD day"})
		return
	}
	if err := h.Blocked.AddBlocked(c.Request.Context(), c.Param("id"), rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blocked_date": rec.Date})
}

func (h AdminHandler) DeleteBlockedDate(c *gin.Context) {
	day, ok := calendar.ParseDate(c.Param("date"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be a YYYY-MM-DD day"})
		return
	}
	if err := h.Blocked.RemoveBlocked(c.Request.Context(), c.Param("id"), day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

var _ AdminHTTP = AdminHandler{}
