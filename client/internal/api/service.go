package api

import (
	"context"
	"strconv"
)

type (
	Service interface {
		Status(ctx context.Context) (string, error)
		Enabled(ctx context.Context) (bool, error)
		Rules(ctx context.Context) (string, error)
		AddRule(ctx context.Context, params AddRuleParams) (OperationResult, error)

		Enable(ctx context.Context) (OperationResult, error)
		Disable(ctx context.Context) (OperationResult, error)
		Reload(ctx context.Context) (OperationResult, error)
		Reset(ctx context.Context) (OperationResult, error)
		EnableLogging(ctx context.Context) (OperationResult, error)

		CreateBackup(ctx context.Context, path string) (Backup, error)
		ListBackups(ctx context.Context) ([]Backup, error)
		ScheduleBackup(ctx context.Context, cronExpression string) (BackupSettings, error)
		Restore(ctx context.Context, path string) (OperationResult, error)

		History(ctx context.Context, limit int) ([]RuleEvent, error)
		System(ctx context.Context) (SystemInfo, error)
	}
)

type service struct {
	apiClient Client
}

func NewService(apiClient Client) Service {
	return service{apiClient: apiClient}
}

func (s service) Status(ctx context.Context) (string, error) {
	var response struct {
		Data map[string]string `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "firewall/status",
		Response: &response,
	})
	return response.Data["report"], err
}

func (s service) Enabled(ctx context.Context) (bool, error) {
	var response struct {
		Data map[string]bool `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "firewall/enabled",
		Response: &response,
	})
	return response.Data["enabled"], err
}

func (s service) Rules(ctx context.Context) (string, error) {
	var response struct {
		Data map[string]string `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "firewall/rules",
		Response: &response,
	})
	return response.Data["rules"], err
}

func (s service) AddRule(ctx context.Context, params AddRuleParams) (OperationResult, error) {
	var response struct {
		Data OperationResult `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "firewall/rules",
		Body:     params,
		Response: &response,
	})
	return response.Data, err
}

func (s service) Enable(ctx context.Context) (OperationResult, error) {
	return s.lifecycle(ctx, "firewall/enable")
}

func (s service) Disable(ctx context.Context) (OperationResult, error) {
	return s.lifecycle(ctx, "firewall/disable")
}

func (s service) Reload(ctx context.Context) (OperationResult, error) {
	return s.lifecycle(ctx, "firewall/reload")
}

func (s service) Reset(ctx context.Context) (OperationResult, error) {
	return s.lifecycle(ctx, "firewall/reset")
}

func (s service) EnableLogging(ctx context.Context) (OperationResult, error) {
	return s.lifecycle(ctx, "firewall/logging")
}

func (s service) lifecycle(ctx context.Context, path string) (OperationResult, error) {
	var response struct {
		Data OperationResult `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     path,
		Response: &response,
	})
	return response.Data, err
}

func (s service) CreateBackup(ctx context.Context, path string) (Backup, error) {
	var response struct {
		Data Backup `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "backups",
		Body:     map[string]string{"path": path},
		Response: &response,
	})
	return response.Data, err
}

func (s service) ListBackups(ctx context.Context) ([]Backup, error) {
	var response struct {
		Data []Backup `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "backups",
		Response: &response,
	})
	return response.Data, err
}

func (s service) ScheduleBackup(ctx context.Context, cronExpression string) (BackupSettings, error) {
	var response struct {
		Data BackupSettings `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "backups/schedule",
		Body:     map[string]string{"cron_expression": cronExpression},
		Response: &response,
	})
	return response.Data, err
}

func (s service) Restore(ctx context.Context, path string) (OperationResult, error) {
	var response struct {
		Data OperationResult `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "restore",
		Body:     map[string]string{"path": path},
		Response: &response,
	})
	return response.Data, err
}

func (s service) History(ctx context.Context, limit int) ([]RuleEvent, error) {
	var response struct {
		Data []RuleEvent `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "history",
		Response: &response,
		QueryParams: map[string]string{
			"limit": strconv.Itoa(limit),
		},
	})
	return response.Data, err
}

func (s service) System(ctx context.Context) (SystemInfo, error) {
	var response struct {
		Data SystemInfo `json:"data"`
	}

	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "system",
		Response: &response,
	})
	return response.Data, err
}
