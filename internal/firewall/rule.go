package firewall

import (
	"strings"

	"bastion/internal/types"
)

type (
	// Rule describes a single firewall directive. Either Target (a port
	// number or service name) or FromIP (a source address) is set, never
	// both. The rendered form is canonical: the same inputs always produce
	// the same string, which is used both to build the mutating command and
	// to test for prior existence.
	Rule struct {
		Target   string
		FromIP   string
		Port     string
		Protocol types.Protocol
	}
)

// PortRule builds a rule for a port number or service name.
func PortRule(target string, proto types.Protocol) Rule {
	return Rule{Target: target, Protocol: proto}
}

// SourceRule builds a rule for a source IP, optionally narrowed to a
// destination port and protocol.
func SourceRule(ip, port string, proto types.Protocol) Rule {
	return Rule{FromIP: ip, Port: port, Protocol: proto}
}

// Render produces the canonical string form of the rule.
//
//	PortRule("80", "tcp")                 => "80/tcp"
//	PortRule("80", "")                    => "80"
//	SourceRule("10.0.0.5", "8080", "tcp") => "from 10.0.0.5 to any port 8080 proto tcp"
//	SourceRule("10.0.0.5", "", "")        => "from 10.0.0.5"
func (r Rule) Render() string {
	if r.FromIP != "" {
		var b strings.Builder
		b.WriteString("from ")
		b.WriteString(r.FromIP)
		if r.Port != "" {
			b.WriteString(" to any port ")
			b.WriteString(r.Port)
		}
		if r.Protocol != types.ProtocolAny {
			b.WriteString(" proto ")
			b.WriteString(r.Protocol.String())
		}
		return b.String()
	}

	if r.Protocol != types.ProtocolAny {
		return r.Target + "/" + r.Protocol.String()
	}
	return r.Target
}

// matchesLine reports whether a single line of the numbered rule listing
// refers to this rule, comparing whole tokens per field so that "80" no
// longer matches an unrelated "8080" entry.
func (r Rule) matchesLine(line string) bool {
	if i := strings.Index(line, "]"); i >= 0 {
		line = line[i+1:]
	}
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}

	if r.FromIP != "" {
		if !containsToken(tokens, r.FromIP) {
			return false
		}
		if r.Port != "" {
			want := r.Port
			if r.Protocol != types.ProtocolAny {
				want += "/" + r.Protocol.String()
			}
			return containsToken(tokens, want)
		}
		return true
	}

	want := r.Target
	if r.Protocol != types.ProtocolAny {
		want += "/" + r.Protocol.String()
	}
	return containsToken(tokens, want)
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
