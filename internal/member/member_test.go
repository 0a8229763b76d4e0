package member

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     Role
		want   Role
		wantOK bool
	}{
		{RoleMember, RoleAdmin, true},
		{RoleAdmin, RoleMember, true},
		{"admin", RoleMember, true},
		{"MEMBER", RoleAdmin, true},
		{"owner", "owner", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Toggle()
		require.Equal(t, tt.want, got, "toggle %q", tt.in)
		require.Equal(t, tt.wantOK, ok, "toggle %q", tt.in)
	}
}

func TestDecodeStringAndNumericIDs(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"1","name":"Aaron Miles","email":"aaron@mailinator.com","role":"member"},
		{"id":2,"name":"Aishwarya Naik","email":"aishwarya@mailinator.com","role":"admin"}
	]`
	batch, err := Decode(strings.NewReader(payload))
	require.NoError(t, err)
	require.Empty(t, batch.Rejected)
	require.Len(t, batch.Members, 2)
	require.Equal(t, ID("1"), batch.Members[0].ID)
	require.Equal(t, ID("2"), batch.Members[1].ID)
	require.Equal(t, Role("admin"), batch.Members[1].Role)
	require.Equal(t, []ID{"1", "2"}, IDs(batch.Members))
}

func TestDecodeRejectsMalformedRecords(t *testing.T) {
	t.Parallel()

	payload := `[
		{"id":"1","name":"Aaron","email":"a@x.io","role":"member"},
		{"id":"2","name":"No Email","role":"member"},
		{"name":"No ID","email":"n@x.io","role":"member"},
		{"id":1,"name":"Dup","email":"d@x.io","role":"admin"},
		{"id":"5","name":null,"email":"e@x.io","role":"member"},
		"not an object",
		{"id":"7","name":"Ok","email":"","role":"admin"}
	]`
	batch, err := Decode(strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, []ID{"1", "7"}, IDs(batch.Members))
	require.Len(t, batch.Rejected, 5)

	require.Equal(t, 1, batch.Rejected[0].Index)
	require.ErrorIs(t, batch.Rejected[0], ErrMissingField)
	require.Contains(t, batch.Rejected[0].Error(), "email")

	require.ErrorIs(t, batch.Rejected[1], ErrMissingField)
	require.Contains(t, batch.Rejected[1].Error(), "id")

	require.ErrorIs(t, batch.Rejected[2], ErrDuplicateID)
	require.Equal(t, ID("1"), batch.Rejected[2].ID)

	require.ErrorIs(t, batch.Rejected[3], ErrMissingField)
	require.Equal(t, 5, batch.Rejected[4].Index)
}

func TestDecodeRejectsNonArrayPayload(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{"id":"1"}`, `not json`, `[{"id":"1"`} {
		_, err := Decode(strings.NewReader(payload))
		require.Error(t, err, payload)
		require.True(t, errors.Is(err, ErrMalformedPayload), payload)
	}
}
