package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
)

// Recoverer turns a panic in a downstream handler into a 500 response with
// the standard error body. http.ErrAbortHandler is re-raised so the server
// can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
				panic(rvr)
			}

			logger.FromContext(r.Context()).Error("recovered from panic",
				"panic", redact.String(fmt.Sprint(rvr)),
				"stack", string(debug.Stack()))

			msg := fmt.Sprintf("unexpected error: %s", redact.String(fmt.Sprint(rvr)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, msg)
		}()

		next.ServeHTTP(w, r)
	})
}
