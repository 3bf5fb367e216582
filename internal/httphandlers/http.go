package httphandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bastion/internal/eventbus"
	"bastion/internal/service"
	"bastion/internal/types"
	"bastion/logger"
)

type (
	ApiHandler struct {
		fw       service.FirewallService
		backups  service.BackupService
		eb       eventbus.Bus
		validate *validator.Validate
	}
)

func NewApiHandler(fw service.FirewallService, backups service.BackupService, eb eventbus.Bus) *ApiHandler {
	return &ApiHandler{
		fw:       fw,
		backups:  backups,
		eb:       eb,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (handler *ApiHandler) Status(w http.ResponseWriter, r *http.Request) {
	report, err := handler.fw.Status(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "firewall status", map[string]string{"report": report})
}

func (handler *ApiHandler) Enabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := handler.fw.Enabled(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "firewall state", map[string]bool{"enabled": enabled})
}

func (handler *ApiHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	listing, err := handler.fw.Rules(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "firewall rules", map[string]string{"rules": listing})
}

func (handler *ApiHandler) AddRule(w http.ResponseWriter, r *http.Request) {
	var params types.AddRuleParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		badRequest(w, errors.Wrap(err, "invalid request body"))
		return
	}

	if err := handler.validate.Struct(params); err != nil {
		badRequest(w, err)
		return
	}

	result, err := handler.fw.AddRule(r.Context(), params)
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "rule processed", result)
}

func (handler *ApiHandler) Enable(w http.ResponseWriter, r *http.Request) {
	handler.lifecycle(w, r, handler.fw.Enable)
}

func (handler *ApiHandler) Disable(w http.ResponseWriter, r *http.Request) {
	handler.lifecycle(w, r, handler.fw.Disable)
}

func (handler *ApiHandler) Reload(w http.ResponseWriter, r *http.Request) {
	handler.lifecycle(w, r, handler.fw.Reload)
}

func (handler *ApiHandler) Reset(w http.ResponseWriter, r *http.Request) {
	handler.lifecycle(w, r, handler.fw.Reset)
}

func (handler *ApiHandler) EnableLogging(w http.ResponseWriter, r *http.Request) {
	handler.lifecycle(w, r, handler.fw.EnableLogging)
}

func (handler *ApiHandler) lifecycle(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context) (*types.OperationResult, error)) {
	result, err := op(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "command executed", result)
}

func (handler *ApiHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var params types.CreateBackupParams
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			badRequest(w, errors.Wrap(err, "invalid request body"))
			return
		}
	}

	record, err := handler.backups.Create(r.Context(), params.Path)
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "backup created", record)
}

func (handler *ApiHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	records, err := handler.backups.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "backups", records)
}

func (handler *ApiHandler) ScheduleBackup(w http.ResponseWriter, r *http.Request) {
	var params types.ScheduleBackupParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		badRequest(w, errors.Wrap(err, "invalid request body"))
		return
	}

	if err := handler.validate.Struct(params); err != nil {
		badRequest(w, err)
		return
	}

	settings, err := handler.backups.Schedule(r.Context(), params.CronExpression)
	if err != nil {
		badRequest(w, err)
		return
	}

	ok(w, "backup scheduled", settings)
}

func (handler *ApiHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var params types.RestoreParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		badRequest(w, errors.Wrap(err, "invalid request body"))
		return
	}

	if err := handler.validate.Struct(params); err != nil {
		badRequest(w, err)
		return
	}

	logger.Info("starting firewall restore",
		zap.String("path", params.Path))
	result, err := handler.fw.Restore(r.Context(), params.Path)
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "firewall restored", result)
}

func (handler *ApiHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := handler.fw.History(r.Context(), limit)
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "operation history", events)
}

func (handler *ApiHandler) System(w http.ResponseWriter, r *http.Request) {
	ok(w, "system info", types.CollectSystemInfo())
}

// Events streams rule operation events as newline-delimited JSON until the
// client disconnects.
func (handler *ApiHandler) Events(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")

	ch := handler.eb.Register(eventbus.TopicRules)
	defer handler.eb.Deregister(eventbus.TopicRules, ch)
	for {
		select {
		case ev := <-ch:
			if err := writeEventLine(w, ev); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}
