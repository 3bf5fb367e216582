package types

type (
	// AddRuleParams is the request body for creating a firewall rule. Either
	// Target (port or service rule) or FromIP (source rule) must be set.
	AddRuleParams struct {
		Action   string `json:"action" validate:"required,oneof=allow deny reject"`
		Target   string `json:"target" validate:"required_without=FromIP,excluded_with=FromIP"`
		FromIP   string `json:"from_ip" validate:"omitempty,ip"`
		Port     string `json:"port" validate:"omitempty,numeric,excluded_without=FromIP"`
		Protocol string `json:"protocol" validate:"omitempty,oneof=tcp udp"`
	}

	CreateBackupParams struct {
		Path string `json:"path"`
	}

	RestoreParams struct {
		Path string `json:"path" validate:"required"`
	}

	ScheduleBackupParams struct {
		CronExpression string `json:"cron_expression" validate:"required"`
	}
)
