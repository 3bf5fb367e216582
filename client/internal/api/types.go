package api

import (
	"time"

	"github.com/google/uuid"
)

type (
	Config struct {
		Host      string
		AccessKey string
	}

	OperationResult struct {
		Status  string `json:"status"`
		Rule    string `json:"rule"`
		Action  string `json:"action"`
		Message string `json:"message"`
	}

	AddRuleParams struct {
		Action   string `json:"action"`
		Target   string `json:"target,omitempty"`
		FromIP   string `json:"from_ip,omitempty"`
		Port     string `json:"port,omitempty"`
		Protocol string `json:"protocol,omitempty"`
	}

	RuleEvent struct {
		ID        uuid.UUID `json:"id"`
		Action    string    `json:"action"`
		Rule      string    `json:"rule"`
		Status    string    `json:"status"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"created_at"`
	}

	Backup struct {
		ID          uuid.UUID `json:"id"`
		Path        string    `json:"path"`
		Location    string    `json:"location"`
		StorageType string    `json:"storage_type"`
		Size        int64     `json:"size"`
		CreatedAt   time.Time `json:"created_at"`
	}

	BackupSettings struct {
		ID             uuid.UUID `json:"id"`
		CronExpression string    `json:"cron_expression"`
		Enabled        bool      `json:"enabled"`
		CreatedAt      time.Time `json:"created_at"`
	}

	SystemInfo struct {
		Hostname       string  `json:"hostname"`
		OS             string  `json:"os"`
		Platform       string  `json:"platform"`
		UptimeSeconds  uint64  `json:"uptime_seconds"`
		CPUCount       int     `json:"cpu_count"`
		CPUUsedPercent float64 `json:"cpu_used_percent"`
		MemoryTotal    uint64  `json:"memory_total"`
		MemoryUsed     uint64  `json:"memory_used"`
	}
)
