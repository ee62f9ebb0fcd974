package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
	"schooladmin/internal/pager"
)

// DefaultHeartbeat is how often an idle stream sends an SSE comment.
const DefaultHeartbeat = 25 * time.Second

// snapshotter renders the current page of one collection.
type snapshotter interface {
	snapshot(ctx context.Context) (any, error)
}

// pagedView re-lists a collection and re-binds it to a Pager that lives as
// long as the connection, so the page survives every change.
type pagedView[T any] struct {
	list  func(ctx context.Context) ([]T, error)
	pager *pager.Pager[T]
}

func newPagedView[T any](list func(ctx context.Context) ([]T, error), page int) *pagedView[T] {
	p := pager.New[T](nil)
	p.Paginate(page)
	return &pagedView[T]{list: list, pager: p}
}

func (v *pagedView[T]) snapshot(ctx context.Context) (any, error) {
	items, err := v.list(ctx)
	if err != nil {
		return nil, err
	}
	v.pager.Bind(items)
	return helpers.NewPage(v.pager), nil
}

// StreamController pushes live list pages over server-sent events.
type StreamController struct {
	Logger     *slog.Logger
	Feed       domain.ChangeFeed
	Students   domain.StudentService
	Lessons    domain.LessonService
	Activities domain.ActivityService
	Scores     domain.ScoreService
	Heartbeat  time.Duration
}

// NewStreamController creates a StreamController using DefaultHeartbeat.
func NewStreamController(
	logger *slog.Logger,
	feed domain.ChangeFeed,
	students domain.StudentService,
	lessons domain.LessonService,
	activities domain.ActivityService,
	scores domain.ScoreService,
) *StreamController {
	return &StreamController{
		Logger:     logger,
		Feed:       feed,
		Students:   students,
		Lessons:    lessons,
		Activities: activities,
		Scores:     scores,
		Heartbeat:  DefaultHeartbeat,
	}
}

func (c *StreamController) view(collection string, page int) (snapshotter, bool) {
	switch collection {
	case domain.CollectionStudents:
		return newPagedView(c.Students.List, page), true
	case domain.CollectionLessons:
		return newPagedView(c.Lessons.List, page), true
	case domain.CollectionActivities:
		return newPagedView(func(ctx context.Context) ([]ActivitySummary, error) {
			activities, err := c.Activities.List(ctx)
			if err != nil {
				return nil, err
			}
			return lo.Map(activities, summarize), nil
		}, page), true
	case domain.CollectionScores:
		return newPagedView(c.Scores.List, page), true
	}
	return nil, false
}

// Stream godoc
// @Summary Stream a live list page
// @Description Server-sent events. Sends a snapshot event with the requested page on connect and again after every change to the collection. The token may be passed as access_token query parameter.
// @Tags stream
// @Produce text/event-stream
// @Security BearerAuth
// @Param collection path string true "students, lessons, activities or scores"
// @Param page query int false "Page number (default 1)"
// @Param access_token query string false "JWT when the Authorization header cannot be set"
// @Success 200 {string} string "event: snapshot"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /stream/{collection} [get]
func (c *StreamController) Stream(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	view, ok := c.view(collection, helpers.ParsePage(r))
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown collection")
		return
	}

	// Subscribe before the first snapshot so no change slips between them.
	// Bursts of changes collapse into one pending refresh.
	changed := make(chan struct{}, 1)
	cancel := c.Feed.Subscribe(collection, func(domain.Change) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	if err := c.push(ctx, w, rc, view); err != nil {
		c.Logger.DebugContext(ctx, "stream closed", "collection", collection, "err", err)
		return
	}

	heartbeat := c.Heartbeat
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			if err := c.push(ctx, w, rc, view); err != nil {
				c.Logger.DebugContext(ctx, "stream closed", "collection", collection, "err", err)
				return
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// push sends the current page as a snapshot event. A failed listing is reported
// to the client as an error event and does not end the stream.
func (c *StreamController) push(ctx context.Context, w io.Writer, rc *http.ResponseController, view snapshotter) error {
	event := "snapshot"
	var payload any
	data, err := view.snapshot(ctx)
	if err != nil {
		c.Logger.ErrorContext(ctx, "stream snapshot failed", "err", err)
		event = "error"
		payload = helpers.APIError{Code: helpers.ErrCodeInternalError, Message: "internal error"}
	} else {
		payload = data
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return err
	}
	return rc.Flush()
}
