package api

import (
	"log"
	"net/http"
	"time"
)

// responseRecorder remembers the status code and payload size a handler
// produced, so the access log reports what actually went over the wire.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	// Handlers that write without an explicit WriteHeader get an implicit 200.
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware emits one key=value access line per request. Durations
// include handler time plus response writing, so slow clients show up too.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		log.Printf(
			"http method=%s path=%s status=%d bytes=%d dur=%dms",
			r.Method, r.URL.RequestURI(), rec.status, rec.bytes,
			time.Since(start).Milliseconds(),
		)
	})
}
