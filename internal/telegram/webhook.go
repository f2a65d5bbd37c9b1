package telegram

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// NewRouter serves /healthz and, when webhookSecret is set, the update
// endpoint POST /webhook/{secret}.
func NewRouter(webhookSecret string, handle UpdateFunc, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if webhookSecret != "" {
		r.Post("/webhook/{secret}", webhookHandler(webhookSecret, handle, logger))
	}
	return r
}

func webhookHandler(secret string, handle UpdateFunc, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "secret") != secret {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		defer r.Body.Close()

		var upd tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		// Telegram redelivers on non-2xx, so handler failures are only logged.
		if err := handle(r.Context(), upd); err != nil {
			logger.Errorw("update failed", "update_id", upd.UpdateID, "error", err)
		}
		w.WriteHeader(http.StatusOK)
	}
}
