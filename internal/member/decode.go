package member

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

var (
	// ErrMalformedPayload means the payload is not a JSON array.
	ErrMalformedPayload = errors.New("member: payload is not a JSON array")
	ErrMissingField     = errors.New("member: missing field")
	ErrDuplicateID      = errors.New("member: duplicate id")
)

// Rejection describes a record dropped at ingestion.
type Rejection struct {
	Index int
	ID    ID
	Err   error
}

func (r Rejection) Error() string {
	if r.ID != "" {
		return fmt.Sprintf("record %d (id %s): %v", r.Index, r.ID, r.Err)
	}
	return fmt.Sprintf("record %d: %v", r.Index, r.Err)
}

func (r Rejection) Unwrap() error { return r.Err }

// Batch is the outcome of decoding a source payload.
type Batch struct {
	Members  []Member
	Rejected []Rejection
}

type rawMember struct {
	ID    *ID     `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// Decode reads a JSON array of members. Records with missing fields or a
// repeated id are rejected individually; the rest keep their source order.
func Decode(r io.Reader) (Batch, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	batch := Batch{Members: make([]Member, 0, len(items))}
	seen := make(map[ID]struct{}, len(items))
	for i, item := range items {
		m, err := decodeOne(item)
		if err != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Index: i, ID: m.ID, Err: err})
			continue
		}
		if _, dup := seen[m.ID]; dup {
			batch.Rejected = append(batch.Rejected, Rejection{Index: i, ID: m.ID, Err: ErrDuplicateID})
			continue
		}
		seen[m.ID] = struct{}{}
		batch.Members = append(batch.Members, m)
	}
	return batch, nil
}

func decodeOne(data []byte) (Member, error) {
	var raw rawMember
	if err := json.Unmarshal(data, &raw); err != nil {
		return Member{}, err
	}
	var m Member
	if raw.ID != nil {
		m.ID = *raw.ID
	}
	if m.ID == "" {
		return m, fmt.Errorf("%w: id", ErrMissingField)
	}
	switch {
	case raw.Name == nil:
		return m, fmt.Errorf("%w: name", ErrMissingField)
	case raw.Email == nil:
		return m, fmt.Errorf("%w: email", ErrMissingField)
	case raw.Role == nil:
		return m, fmt.Errorf("%w: role", ErrMissingField)
	}
	m.Name = *raw.Name
	m.Email = *raw.Email
	m.Role = Role(*raw.Role)
	return m, nil
}
