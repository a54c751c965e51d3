package handlers

import (
	"bytes"
	"errors"

	"twap-book/pkg/replay"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) PostReplay(c *fiber.Ctx) error {
	ctx := c.UserContext()
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		h.obs.LogErr(ctx, "replay.post: empty body")
		return badRequest(c, errors.New("event log is required"))
	}

	h.obs.LogInfo(ctx, "replay.post: bytes=%d", len(body))

	res, err := replay.RunReader(ctx, bytes.NewReader(body), h.obs)
	if err != nil {
		if isClientError(err) {
			return badRequest(c, err)
		}
		h.obs.LogAlert(ctx, "replay.post failed: err=%v", err)
		return internalServerError(c)
	}

	h.obs.LogInfo(ctx, "replay.post done: events=%d average=%v", res.Events, res.Average)
	return jsonResponse(c, fiber.StatusOK, toReplayResponse(res))
}
