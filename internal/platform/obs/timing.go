package obs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID attaches a fresh run identifier to ctx so every timed operation
// of one pipeline run can be correlated in the logs.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, RunIDKey, id), id
}

// RunID returns the identifier stored by WithRunID, or "" if none.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID := RunID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
