// Package querygate decides which caller-supplied statements may reach the
// database console.
//
// The check looks at the leading keyword only. Text such as
// "SELECT 1; DROP TABLE tasks" passes because it starts with SELECT; whether
// the trailing statement runs is up to the backend driver. The server
// backend sends row-producing statements over the extended protocol, which
// rejects multi-statement text; the embedded driver gives no such promise.
package querygate

import (
	"strings"

	"task-manager/internal/errors"
)

// RejectedMessage is the reason given for every rejected statement.
const RejectedMessage = "Only SELECT and PRAGMA queries are allowed for safety"

var allowedPrefixes = []string{"SELECT", "PRAGMA"}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns a policy error for a rejected decision and nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return errors.NewPolicyError(d.Reason)
}

// Authorize allows a statement whose trimmed, upper-cased text starts with
// SELECT or PRAGMA.
func Authorize(statement string) Decision {
	upper := strings.ToUpper(strings.TrimSpace(statement))
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: RejectedMessage}
}
