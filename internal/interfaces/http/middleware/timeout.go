package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// timeoutWriter guards the response writer shared between the handler
// goroutine and the deadline branch. Once the timeout response has been
// written, late output from the handler is discarded.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) WriteHeaderNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	w.wrote = true
	return w.ResponseWriter.WriteString(s)
}

// Timeout middleware to prevent long-running requests. Follows
// http.TimeoutHandler semantics: on expiry the timeout response is written
// exactly once and anything the handler writes afterwards is dropped. If
// the handler already started writing, the deadline branch writes nothing.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		w := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = w

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			w.mu.Lock()
			if !w.wrote {
				w.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.ResponseWriter.WriteHeader(http.StatusRequestTimeout)
				w.ResponseWriter.Write([]byte(`{"success":false,"message":"Request timeout"}`))
			}
			w.timedOut = true
			w.mu.Unlock()
		}
	}
}
