package member

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ID identifies a member. Numeric ids from the source are kept as their
// decimal text so 1 and "1" compare equal.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Role is the member's access level as received from the source.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "Admin"
)

// IsAdmin reports whether r is the admin half of the toggle pair.
func (r Role) IsAdmin() bool { return strings.EqualFold(string(r), string(RoleAdmin)) }

// IsMember reports whether r is the member half of the toggle pair.
func (r Role) IsMember() bool { return strings.EqualFold(string(r), string(RoleMember)) }

// Toggle flips member and Admin. Roles outside the pair are returned
// unchanged with ok=false.
func (r Role) Toggle() (next Role, ok bool) {
	switch {
	case r.IsMember():
		return RoleAdmin, true
	case r.IsAdmin():
		return RoleMember, true
	default:
		return r, false
	}
}

// Member is one row of the admin table.
type Member struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IDs returns the ids of members in order.
func IDs(members []Member) []ID {
	out := make([]ID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}
