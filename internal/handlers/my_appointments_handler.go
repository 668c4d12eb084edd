package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vetcard/internal/audit"
	"github.com/BruksfildServices01/vetcard/internal/dto"
	"github.com/BruksfildServices01/vetcard/internal/httperr"
	"github.com/BruksfildServices01/vetcard/internal/httpresp"
	"github.com/BruksfildServices01/vetcard/internal/middleware"
	"github.com/BruksfildServices01/vetcard/internal/storage"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type MyAppointmentsHandler struct {
	visitors VisitorStores
	events   booking.EventSink
	loc      *time.Location
	locale   string
	now      func() time.Time
}

func NewMyAppointmentsHandler(visitors VisitorStores, events booking.EventSink, loc *time.Location, locale string) *MyAppointmentsHandler {
	return &MyAppointmentsHandler{
		visitors: visitors,
		events:   events,
		loc:      loc,
		locale:   locale,
		now:      time.Now,
	}
}

// ======================================================
// LIST
// ======================================================

// List accepts ?filter=all|upcoming|past and an optional ?clinic=slug.
func (h *MyAppointmentsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	store := currentVisitor(c, h.visitors).Appointments

	slug := c.Query("clinic")

	var items []storage.SavedAppointment
	switch c.DefaultQuery("filter", "all") {
	case "all":
		if slug != "" {
			items = store.FilterByClinic(ctx, slug)
		} else {
			items = store.List(ctx)
		}
	case "upcoming":
		items = storage.ByClinic(store.Upcoming(ctx), slug)
	case "past":
		items = storage.ByClinic(store.Past(ctx), slug)
	default:
		httperr.BadRequest(c, "invalid_filter", "Filter must be all, upcoming or past.")
		return
	}

	httpresp.List(c, dto.NewAppointmentList(items, h.now(), h.loc, h.locale))
}

// ======================================================
// DELETE
// ======================================================

func (h *MyAppointmentsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	currentVisitor(c, h.visitors).Appointments.Remove(c.Request.Context(), id)

	if h.events != nil {
		h.events.Dispatch(audit.Event{
			VisitorID:     middleware.VisitorID(c),
			Action:        audit.ActionAppointmentRemoved,
			AppointmentID: &id,
		})
	}

	httpresp.NoContent(c)
}
