package handlers

import (
	"errors"
	"fmt"

	"twap-book/pkg/replay"
	"twap-book/pkg/sessions"
	"twap-book/schemas"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := h.sessions.Create()
	if err != nil {
		h.obs.LogErr(ctx, "session.create failed: err=%v", err)
		return temporaryUnavailable(c, err)
	}

	h.obs.LogInfo(ctx, "session.create done: session_id=%s", id)
	return jsonResponse(c, fiber.StatusCreated, schemas.CreateSessionResponse{
		SessionID: id.String(),
	})
}

func (h *Handler) ApplySessionEvents(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, session, err := h.lookupSession(c)
	if err != nil {
		return sessionLookupFailed(c, err)
	}

	var req schemas.ApplyEventsRequest
	if err := c.BodyParser(&req); err != nil {
		h.obs.LogErr(ctx, "session.apply: invalid request body session_id=%s", id)
		return badRequest(c, errors.New("invalid request body"))
	}
	if len(req.Events) == 0 {
		return badRequest(c, errors.New("events are required"))
	}

	entries := make([]sessions.Entry, 0, len(req.Events))
	for _, ev := range req.Events {
		entries = append(entries, sessions.Entry{
			Seq: ev.Seq,
			Event: replay.Event{
				Timestamp: ev.Timestamp,
				Op:        replay.Op(ev.Op),
				OrderID:   ev.OrderID,
				Price:     ev.Price,
			},
		})
	}

	h.obs.LogInfo(ctx, "session.apply: session_id=%s events=%d", id, len(entries))

	applied, err := session.Apply(entries)
	if err != nil {
		var gap *sessions.SequenceGapError
		if errors.As(err, &gap) {
			h.obs.LogErr(ctx, "session.apply gap: session_id=%s expected=%d received=%d applied=%d", id, gap.Expected, gap.Received, applied)
			return conflict(c, gap, applied, toStateResponse(id, session.State()))
		}
		if isClientError(err) {
			h.obs.LogErr(ctx, "session.apply rejected: session_id=%s applied=%d err=%v", id, applied, err)
			return batchRejected(c, err, applied, toStateResponse(id, session.State()))
		}
		h.obs.LogAlert(ctx, "session.apply failed: session_id=%s err=%v", id, err)
		return internalServerError(c)
	}

	h.obs.LogInfo(ctx, "session.apply done: session_id=%s applied=%d", id, applied)
	return jsonResponse(c, fiber.StatusOK, schemas.ApplyEventsResponse{
		Applied: applied,
		State:   toStateResponse(id, session.State()),
	})
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, session, err := h.lookupSession(c)
	if err != nil {
		return sessionLookupFailed(c, err)
	}
	return jsonResponse(c, fiber.StatusOK, toStateResponse(id, session.State()))
}

func (h *Handler) CloseSession(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return badRequest(c, errInvalidSessionID)
	}

	res, err := h.sessions.Close(id)
	if err != nil {
		return notFound(c, err)
	}

	h.obs.LogInfo(ctx, "session.close done: session_id=%s events=%d average=%v", id, res.Events, res.Average)
	return jsonResponse(c, fiber.StatusOK, toReplayResponse(res))
}

var errInvalidSessionID = errors.New("sessionId must be a UUID")

func (h *Handler) lookupSession(c *fiber.Ctx) (uuid.UUID, *sessions.Session, error) {
	raw := c.Params("sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.obs.LogErr(c.UserContext(), "session.lookup: invalid session_id %q", raw)
		return uuid.Nil, nil, errInvalidSessionID
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %s", err, id)
	}
	return id, session, nil
}

func sessionLookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, sessions.ErrNotFound) {
		return notFound(c, err)
	}
	return badRequest(c, err)
}

func toStateResponse(id uuid.UUID, state sessions.State) schemas.SessionStateResponse {
	return schemas.SessionStateResponse{
		SessionID:     id.String(),
		AppliedSeq:    state.AppliedSeq,
		Events:        state.Events,
		LastTimestamp: state.LastTimestamp,
		CurrentMax:    state.CurrentMax,
		HasMax:        state.HasMax,
		ActiveOrders:  state.ActiveOrders,
		Average:       state.Average,
		TotalTime:     state.TotalTime,
	}
}
