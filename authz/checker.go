package authz

// Checker is the authorization interface consumed by action surfaces.
// The default implementation evaluates against the static Table; tests and
// future backends (server-driven grants) can substitute their own.
type Checker interface {
	HasPermission(roles []Role, capability Capability) bool
}

// CheckerFunc is an adapter to use ordinary functions as Checker.
type CheckerFunc func(roles []Role, capability Capability) bool

// HasPermission implements Checker.
func (f CheckerFunc) HasPermission(roles []Role, capability Capability) bool {
	return f(roles, capability)
}

// TableChecker evaluates permissions against a role → capability table.
// The zero value is not usable; construct with NewTableChecker.
type TableChecker struct {
	table map[Role][]Capability
}

// NewTableChecker creates a Checker from an explicit table. Passing nil uses
// the built-in Table.
func NewTableChecker(table map[Role][]Capability) *TableChecker {
	if table == nil {
		table = Table
	}
	return &TableChecker{table: table}
}

// HasPermission implements Checker.
func (c *TableChecker) HasPermission(roles []Role, capability Capability) bool {
	for _, r := range roles {
		granted, ok := c.table[r]
		if !ok {
			continue
		}
		if MatchAny(granted, capability) {
			return true
		}
	}
	return false
}

// Default is the package-level checker over the built-in Table.
var Default Checker = NewTableChecker(nil)
