package auth

// Operation names an action guarded by Authorize.
type Operation int

const (
	OpProductInsert Operation = iota
	OpOrderRead
)

func (o Operation) String() string {
	switch o {
	case OpProductInsert:
		return "product:insert"
	case OpOrderRead:
		return "order:read"
	}
	return "unknown"
}

// Decision is the outcome of Authorize.
type Decision int

const (
	Allow Decision = iota
	Forbidden
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "ALLOW"
	case Forbidden:
		return "FORBIDDEN"
	case Unauthorized:
		return "UNAUTHORIZED"
	}
	return "UNKNOWN"
}

// Authorize decides whether p may perform op. owner is the email of the
// resource owner and only matters for ownership-scoped operations.
func Authorize(op Operation, p *Principal, owner string) Decision {
	if p == nil || p.Email == "" {
		return Unauthorized
	}

	switch op {
	case OpProductInsert:
		if p.IsAdmin() {
			return Allow
		}
	case OpOrderRead:
		if p.IsAdmin() || (p.HasRole(RoleClient) && owner != "" && p.Email == owner) {
			return Allow
		}
	}
	return Forbidden
}
