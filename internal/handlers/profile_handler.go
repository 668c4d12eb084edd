package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vetcard/internal/audit"
	"github.com/BruksfildServices01/vetcard/internal/httperr"
	"github.com/BruksfildServices01/vetcard/internal/httpresp"
	"github.com/BruksfildServices01/vetcard/internal/middleware"
	"github.com/BruksfildServices01/vetcard/internal/usecase/booking"
	"github.com/BruksfildServices01/vetcard/internal/validators"
)

type ProfileHandler struct {
	visitors VisitorStores
	events   booking.EventSink
}

func NewProfileHandler(visitors VisitorStores, events booking.EventSink) *ProfileHandler {
	return &ProfileHandler{visitors: visitors, events: events}
}

type UpdateProfileRequest struct {
	OwnerName string `json:"owner_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, ok := currentVisitor(c, h.visitors).Profile.Get(c.Request.Context())
	if !ok {
		httperr.NotFound(c, "profile_not_found", "No saved details.")
		return
	}
	httpresp.OK(c, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing contact details.")
		return
	}
	if !validators.IsEmail(req.Email) {
		httperr.Validation(c, "email", "invalid_email", "Please enter a valid email")
		return
	}

	profile := currentVisitor(c, h.visitors).Profile.Save(c.Request.Context(), req.OwnerName, req.Phone, req.Email)
	httpresp.OK(c, profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	currentVisitor(c, h.visitors).Profile.Clear(c.Request.Context())

	if h.events != nil {
		h.events.Dispatch(audit.Event{
			VisitorID: middleware.VisitorID(c),
			Action:    audit.ActionProfileCleared,
		})
	}

	httpresp.NoContent(c)
}
