package handler

import (
	_ "embed"
	"net/http"

	"msgrelay/internal/pkg/logx"
)

//go:embed chat.html
var chatPage []byte

// HandleIndex serves the embedded chat page.
func HandleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(chatPage); err != nil {
			logx.Error(err, "Failed to write chat page")
		}
	}
}
