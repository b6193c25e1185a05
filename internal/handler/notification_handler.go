package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/service"
	"github.com/samims/notification-api/pkg/tracing"
)

// dateTimeLayouts are tried in order; zone-less values are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

type NotificationHandler struct {
	svc    service.NotificationService
	logger *slog.Logger
	tracer *tracing.Tracer
}

func NewNotificationHandler(s service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		svc:    s,
		logger: logger.With("layer", "handler", "component", "notificationHandler"),
		tracer: tracing.NewTracer(tracing.GetTracer("notification-handler")),
	}
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "Create")
	defer span.End()

	p, ok := model.PrincipalFromContext(ctx)
	if !ok {
		respondError(w, h.logger, appErr.ErrUnauthorized)
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		h.logger.Warn("Invalid request body for Create", slog.Any("error", err))
		respondError(w, h.logger, err)
		return
	}

	n, err := h.svc.Create(ctx, body.Message, p.UserID)
	if err != nil {
		h.tracer.RecordError(span, err)
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "List")
	defer span.End()

	p, ok := model.PrincipalFromContext(ctx)
	if !ok {
		respondError(w, h.logger, appErr.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	viewed, err := parseOptionalBool(q.Get("viewed"), "viewed")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	from, err := parseOptionalTime(q.Get("from"), "from")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	to, err := parseOptionalTime(q.Get("to"), "to")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	result, err := h.svc.ListForUser(ctx, p.UserID, viewed, from, to, page)
	if err != nil {
		h.tracer.RecordError(span, err)
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *NotificationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "GetByID")
	defer span.End()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	span.SetAttributes(attribute.Int64(tracing.AttrNotificationID, id))

	n, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if appErr.IsNotFound(err) {
			h.logger.Warn("Notification not found", slog.Int64("id", id))
		} else {
			h.tracer.RecordError(span, err)
		}
		respondError(w, h.logger, err)
		return
	}
	if n.Deleted {
		respondError(w, h.logger, appErr.NewGone("notification %d was deleted", id))
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "MarkViewed")
	defer span.End()

	p, ok := model.PrincipalFromContext(ctx)
	if !ok {
		respondError(w, h.logger, appErr.ErrUnauthorized)
		return
	}
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	span.SetAttributes(attribute.Int64(tracing.AttrNotificationID, id))

	n, err := h.svc.MarkAsViewed(ctx, id, p.UserID)
	if err != nil {
		h.tracer.RecordError(span, err)
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "Delete")
	defer span.End()

	p, ok := model.PrincipalFromContext(ctx)
	if !ok {
		respondError(w, h.logger, appErr.ErrUnauthorized)
		return
	}
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	span.SetAttributes(attribute.Int64(tracing.AttrNotificationID, id))

	if err := h.svc.Delete(ctx, id, p.UserID); err != nil {
		h.tracer.RecordError(span, err)
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.StartInternalSpan(r.Context(), "History")
	defer span.End()

	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	result, err := h.svc.History(ctx, id, page)
	if err != nil {
		h.tracer.RecordError(span, err)
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErr.NewValidation("invalid notification id %q", raw)
	}
	return id, nil
}

func parsePage(r *http.Request) (model.PageRequest, error) {
	q := r.URL.Query()
	var page model.PageRequest
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"page", &page.Page},
		{"size", &page.Size},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return model.PageRequest{}, appErr.NewValidation("%s must be an integer", f.name)
		}
		*f.dst = v
	}
	return page.Normalize(), nil
}

func parseOptionalBool(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErr.NewValidation("%s must be true or false", name)
	}
	return &v, nil
}

func parseOptionalTime(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDateTime(raw)
	if err != nil {
		return nil, appErr.NewValidation("%s: %v", name, err)
	}
	return &t, nil
}

func parseDateTime(raw string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date-time %q", raw)
}
