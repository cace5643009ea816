package handler

import (
	"net/http"
	"strings"

	"msgrelay/internal/pkg/logx"
)

// HandleListUsers returns the currently registered usernames as
// newline-joined plain text, one name per line.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := deps.Registry.ListNames()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(strings.Join(names, "\n"))); err != nil {
			logx.Error(err, "Failed to write user list")
		}
	}
}
