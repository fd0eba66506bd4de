package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/queue"
	"github.com/irondb/gateway/internal/utils"
)

// Enqueuer hands jobs to the queue transport.  Implemented by
// service.JobDispatcher.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind string, payload json.RawMessage) (queue.Job, error)
}

// JobHandler dispatches maintenance jobs.  The route sits behind
// RequireRole(service_role): reindex issues DDL.
type JobHandler struct {
	Jobs Enqueuer
}

func NewJobHandler(jobs Enqueuer) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

type enqueueReq struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type enqueueResp struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// Enqueue accepts a job of a known kind and appends it to the queue.  It
// returns 202 as soon as the broker has the message; completion or failure
// is reported asynchronously on the results queue.  Kind is a closed set —
// anything else is rejected here rather than left for the worker to
// dead-letter.
func (h *JobHandler) Enqueue(c echo.Context) error {
	var req enqueueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	switch req.Kind {
	case model.JobBackupDatabase:
		// no payload
	case model.JobReindexTable:
		// Validate the table identifier at the door: the worker validates
		// again, but a typo should fail the request, not a queued job.
		var p queue.ReindexPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || !utils.ValidIdent(p.Table) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payload.table must be a valid identifier"})
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown job kind"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	job, err := h.Jobs.Enqueue(ctx, req.Kind, req.Payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "enqueue failed"})
	}
	return c.JSON(http.StatusAccepted, enqueueResp{ID: job.ID, Kind: job.Kind, Status: model.JobQueued})
}
