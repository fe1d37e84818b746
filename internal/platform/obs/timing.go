package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the id stored by the HTTP middleware, or "" outside a request.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time starts a timer for op and returns a func to defer with the named error result.
//
//	defer obs.Time(ctx, "registry.Create")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		logger := zerolog.Ctx(ctx)

		if errp != nil && *errp != nil {
			logger.Warn().Str("op", name).Dur("dur", dur).Err(*errp).Msg("op failed")
			return
		}
		logger.Debug().Str("op", name).Dur("dur", dur).Msg("op done")
	}
}
