package cluster

import (
	"fmt"
	"net/http"
)

// NewBasicHealthHandler returns a liveness handler: the process is up and
// the HTTP server answers. That is all consul needs from this service.
func NewBasicHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Service is alive.")
	}
}
