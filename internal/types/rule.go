package types

type (
	// Protocol narrows a rule to tcp or udp. The zero value means the rule
	// applies to both protocols.
	Protocol string

	// Action is the verb a rule is created with.
	Action string

	// Status is the outcome class of a mutating firewall operation.
	Status string
)

const (
	ProtocolAny Protocol = ""
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"

	ActionAllow  Action = "allow"
	ActionDeny   Action = "deny"
	ActionReject Action = "reject"

	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
)

func (p Protocol) String() string {
	return string(p)
}

func (a Action) String() string {
	return string(a)
}

// OperationResult is the outcome of a mutating firewall call. Message holds
// the firewall tool's raw output, or a skip explanation when Status is
// StatusSkipped. Immutable once returned.
type OperationResult struct {
	Status  Status `json:"status"`
	Rule    string `json:"rule,omitempty"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Skipped reports whether the operation was a no-op because the rule
// already existed.
func (r OperationResult) Skipped() bool {
	return r.Status == StatusSkipped
}
