package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/dto"
	"github.com/BruksfildServices01/vetcard/internal/httperr"
	"github.com/BruksfildServices01/vetcard/internal/httpresp"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ClinicDirectory interface {
	FetchClinicList(ctx context.Context) ([]directory.ClinicListItem, error)
	FetchClinicProfile(ctx context.Context, slug string) (*directory.ClinicProfile, error)
}

type ClinicHandler struct {
	dir      ClinicDirectory
	workflow *booking.Workflow
	visitors VisitorStores
}

func NewClinicHandler(dir ClinicDirectory, workflow *booking.Workflow, visitors VisitorStores) *ClinicHandler {
	return &ClinicHandler{
		dir:      dir,
		workflow: workflow,
		visitors: visitors,
	}
}

// ======================================================
// CATALOG
// ======================================================

func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.dir.FetchClinicList(c.Request.Context())
	if err != nil {
		httperr.BadGateway(c, "clinics_unavailable", "Could not load clinics.")
		return
	}
	httpresp.List(c, clinics)
}

// ======================================================
// PROFILE
// ======================================================

func (h *ClinicHandler) Profile(c *gin.Context) {
	profile, err := h.dir.FetchClinicProfile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if directory.StatusOf(err) == http.StatusNotFound {
			httperr.NotFound(c, httperr.CodeClinicNotFound, "Clinic not found.")
			return
		}
		httperr.BadGateway(c, "clinic_unavailable", "Could not load the clinic.")
		return
	}

	httpresp.OK(c, gin.H{
		"clinic":           profile,
		"theme_color":      profile.ThemeColor(),
		"visible_sections": profile.VisibleSections(),
	})
}

// ======================================================
// BOOKING FORM
// ======================================================

// BookingForm opens a session and returns what the form needs to render.
// ?month=YYYY-MM picks the calendar page; the selected date's month is the
// default.
func (h *ClinicHandler) BookingForm(c *gin.Context) {
	sess, err := h.workflow.Open(c.Request.Context(), c.Param("slug"), currentVisitor(c, h.visitors))
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.BadGateway(c, "clinic_unavailable", "Could not load the clinic.")
		return
	}

	month := sess.Draft.Date
	if m := c.Query("month"); m != "" {
		parsed, err := time.ParseInLocation("2006-01", m, sess.Location())
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Month must be YYYY-MM.")
			return
		}
		month = parsed
	}

	httpresp.OK(c, dto.NewBookingForm(sess, month))
}
