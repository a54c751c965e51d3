package replay

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"twap-book/pkg/metrics"
	"twap-book/pkg/obs"
)

// Run replays events through a fresh book and returns the time-weighted
// average maximum price.
func Run(events []Event) (Result, error) {
	start := time.Now()
	engine := NewEngine()
	for _, ev := range events {
		if _, err := engine.Apply(ev); err != nil {
			return Result{}, err
		}
	}

	metrics.ReplaysCompleted.WithLabelValues("events").Inc()
	metrics.ReplayLatency.Observe(time.Since(start).Seconds())
	return engine.Result(), nil
}

// RunReader replays a newline-delimited event log. Blank lines and lines
// starting with '#' are skipped. The first bad line aborts the replay.
func RunReader(ctx context.Context, r io.Reader, log *obs.Client) (Result, error) {
	start := time.Now()
	engine := NewEngine()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := ParseEvent(line)
		if err != nil {
			var malformed *MalformedEventError
			if errors.As(err, &malformed) {
				malformed.Line = lineNo
				metrics.MalformedEvents.Inc()
			}
			log.LogErr(ctx, "replay.parse failed line=%d err=%v", lineNo, err)
			return Result{}, err
		}

		if _, err := engine.Apply(ev); err != nil {
			if errors.Is(err, ErrInvariantViolation) {
				log.LogAlert(ctx, "replay.apply aborted line=%d err=%v", lineNo, err)
			} else {
				log.LogErr(ctx, "replay.apply failed line=%d err=%v", lineNo, err)
			}
			return Result{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		log.LogErr(ctx, "replay.read failed after line=%d err=%v", lineNo, err)
		return Result{}, err
	}

	res := engine.Result()
	metrics.ReplaysCompleted.WithLabelValues("stream").Inc()
	metrics.ReplayLatency.Observe(time.Since(start).Seconds())
	log.LogInfo(ctx, "replay.done events=%d total_time=%d average=%v", res.Events, res.TotalTime, res.Average)
	return res, nil
}
