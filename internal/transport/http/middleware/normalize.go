package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/employee-api/internal/domain"
	"go.uber.org/zap"
)

// Normalizer is the single translation point for unexpected failures. Expected
// domain failures never reach it — the service layer returns those as data
// inside success-shaped envelopes. Anything else (a fault returned by a
// handler, or a panic anywhere downstream) is logged and converted into a
// generic 500 envelope so a raw failure never leaks to the client.
type Normalizer struct {
	log *zap.Logger
}

func NewNormalizer(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Handle adapts a fallible handler into an http.HandlerFunc, converting a
// returned infrastructure fault into the normalized 500 envelope.
func (n *Normalizer) Handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			n.fail(w, r, err)
		}
	}
}

// Recover is the outermost pipeline stage. It converts panics from any
// downstream stage into the same normalized 500 envelope.
func (n *Normalizer) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				n.fail(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (n *Normalizer) fail(w http.ResponseWriter, r *http.Request, err error) {
	n.log.Error("unhandled failure",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Time("when", time.Now()),
		zap.Error(err),
	)
	writeEnvelope(w, http.StatusInternalServerError, domain.Failure(domain.MsgUnexpectedError))
}
