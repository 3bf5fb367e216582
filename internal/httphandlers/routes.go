package httphandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

func Routes(h *ApiHandler, accessKey string) chi.Router {
	r := chi.NewRouter()
	r.Route("/v1", func(rr chi.Router) {
		rr.Use(requireAccessKey(accessKey))

		rr.Get("/firewall/status", h.Status)
		rr.Get("/firewall/enabled", h.Enabled)
		rr.Get("/firewall/rules", h.ListRules)
		rr.Post("/firewall/rules", h.AddRule)

		rr.Post("/firewall/enable", h.Enable)
		rr.Post("/firewall/disable", h.Disable)
		rr.Post("/firewall/reload", h.Reload)
		rr.Post("/firewall/reset", h.Reset)
		rr.Post("/firewall/logging", h.EnableLogging)

		rr.Post("/backups", h.CreateBackup)
		rr.Get("/backups", h.ListBackups)
		rr.Post("/backups/schedule", h.ScheduleBackup)
		rr.Post("/restore", h.Restore)

		rr.Get("/history", h.History)
		rr.Get("/system", h.System)
		rr.Get("/events", h.Events)

		rr.Get("/h", func(writer http.ResponseWriter, request *http.Request) {
			ok(writer, "bastion is up", struct{}{})
		})
	})
	return r
}

func requireAccessKey(accessKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if accessKey == "" || r.Header.Get(accessKeyHeader) != accessKey {
				unauthorized(w, errors.New("invalid access key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
