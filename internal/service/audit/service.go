package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Durgaram26/hrms-sub000/internal/domain/audit"
	"github.com/Durgaram26/hrms-sub000/internal/domain/auth"
)

type Service struct {
	repo audit.Repository
}

func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo}
}

// Record writes an audit entry. Marshal or insert failures are logged and
// swallowed; the trail is best effort. The actor's email is taken from the
// request identity when one is present; background jobs have none.
func (s *Service) Record(ctx context.Context, entityType audit.EntityType, entityID string, action audit.Action, actorID, message string, before, after any) {
	entry := &audit.Entry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}

	if identity, err := auth.FromContext(ctx); err == nil {
		entry.ActorEmail = identity.Email
	}

	if before != nil {
		data, err := json.Marshal(before)
		if err != nil {
			slog.Error("failed to marshal audit before snapshot",
				slog.String("entity_type", string(entityType)),
				slog.String("entity_id", entityID),
				slog.String("error", err.Error()))
		} else {
			entry.Before = data
		}
	}
	if after != nil {
		data, err := json.Marshal(after)
		if err != nil {
			slog.Error("failed to marshal audit after snapshot",
				slog.String("entity_type", string(entityType)),
				slog.String("entity_id", entityID),
				slog.String("error", err.Error()))
		} else {
			entry.After = data
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		slog.Error("failed to write audit entry",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
	}
}

func (s *Service) List(ctx context.Context, filter *audit.Filter) (*audit.ListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &audit.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Entries:    entries,
	}, nil
}
