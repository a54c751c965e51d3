package handlers

import (
	"errors"

	"twap-book/pkg/replay"
	"twap-book/pkg/sessions"
	"twap-book/schemas"

	"github.com/gofiber/fiber/v2"
)

func jsonResponse(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(payload)
}

func badRequest(c *fiber.Ctx, err error) error {
	return jsonResponse(c, fiber.StatusBadRequest, fiber.Map{
		"error": err.Error(),
	})
}

func notFound(c *fiber.Ctx, err error) error {
	return jsonResponse(c, fiber.StatusNotFound, fiber.Map{
		"error": err.Error(),
	})
}

func internalServerError(c *fiber.Ctx) error {
	return jsonResponse(c, fiber.StatusInternalServerError, fiber.Map{
		"error": "Something went wrong",
	})
}

func temporaryUnavailable(c *fiber.Ctx, err error) error {
	return jsonResponse(c, fiber.StatusServiceUnavailable, fiber.Map{
		"error": err.Error(),
	})
}

func conflict(c *fiber.Ctx, gap *sessions.SequenceGapError, applied int, state schemas.SessionStateResponse) error {
	return jsonResponse(c, fiber.StatusConflict, schemas.SequenceGapResponse{
		Error:    "sequence gap",
		Expected: gap.Expected,
		Received: gap.Received,
		Applied:  applied,
		State:    state,
	})
}

func batchRejected(c *fiber.Ctx, err error, applied int, state schemas.SessionStateResponse) error {
	return jsonResponse(c, fiber.StatusBadRequest, schemas.ApplyEventsErrorResponse{
		Error:   err.Error(),
		Applied: applied,
		State:   state,
	})
}

// isClientError reports whether err came from the submitted events rather
// than from the book itself.
func isClientError(err error) bool {
	var malformed *replay.MalformedEventError
	var regression *replay.TimestampRegressionError
	return errors.As(err, &malformed) || errors.As(err, &regression) || errors.Is(err, replay.ErrFinalized)
}

func toReplayResponse(res replay.Result) schemas.ReplayResponse {
	profile := make([]schemas.PriceTime, 0, len(res.Profile))
	for _, pt := range res.Profile {
		profile = append(profile, schemas.PriceTime{
			Price:    pt.Price,
			Duration: pt.Duration,
		})
	}
	return schemas.ReplayResponse{
		Average:   res.Average,
		Events:    res.Events,
		TotalTime: res.TotalTime,
		Profile:   profile,
	}
}
