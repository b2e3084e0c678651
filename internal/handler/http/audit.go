package http

import (
	"context"
	"net/http"

	"github.com/Durgaram26/hrms-sub000/internal/domain/audit"
	"github.com/Durgaram26/hrms-sub000/internal/handler/http/response"
)

type AuditService interface {
	List(ctx context.Context, filter *audit.Filter) (*audit.ListResponse, error)
}

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService AuditService
}

func NewAuditHandler(auditService AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{
		Page:  parseIntQuery(r, "page"),
		Limit: parseIntQuery(r, "limit"),
	}
	if v := r.URL.Query().Get("entity_type"); v != "" {
		filter.EntityType = &v
	}
	if v := r.URL.Query().Get("entity_id"); v != "" {
		filter.EntityID = &v
	}
	if v := r.URL.Query().Get("actor_id"); v != "" {
		filter.ActorID = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.auditService.List(r.Context(), &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
