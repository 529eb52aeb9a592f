package http

import (
	"github.com/gin-gonic/gin"

	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/services"
)

type AuditEventsResponse struct {
	Events     []entities.AuditEvent `json:"events"`
	Pagination pagination.Meta       `json:"pagination"`
}

type AuditController struct {
	audit AuditReader
}

func NewAuditController(audit AuditReader) *AuditController {
	return &AuditController{audit: audit}
}

// List handles GET /api/admin/audit-events?page=&size=&user_id=&type=
func (ac *AuditController) List(c *gin.Context) {
	page, ok := queryInt(c, "page", pagination.DefaultPage)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", 25)
	if !ok {
		return
	}
	userID, ok := queryInt(c, "user_id", 0)
	if !ok {
		return
	}
	params, err := pagination.NewParams(page, size, pagination.MaxSize)
	if err != nil {
		respondError(c, services.ErrInvalidRequest("page", err.Error()))
		return
	}
	if userID < 0 {
		respondError(c, services.ErrInvalidRequest("user_id", "user_id must not be negative"))
		return
	}

	filter := auditrepo.Filter{
		UserID:    uint(userID),
		EventType: entities.AuditEventType(c.Query("type")),
	}
	events, total, err := ac.audit.GetEvents(c.Request.Context(), filter, params.Size, params.Offset())
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}
	respondOK(c, "audit events retrieved", AuditEventsResponse{
		Events:     events,
		Pagination: pagination.NewMeta(params, total),
	})
}
