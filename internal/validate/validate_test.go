package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationsOf(t *testing.T, err error) []Violation {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validate.Error, got %v", err)
	return verr.Violations
}

func fieldsOf(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

func TestNewAccount_Valid(t *testing.T) {
	fields, err := Payload(map[string]any{
		"name":     "Alice",
		"password": "Abcdefg1",
		"email":    "alice.smith-1@mail.example.ru",
		"role":     "admin",
	}, NewAccount)
	require.NoError(t, err)
	assert.Equal(t, Fields{"name": "Alice", "password": "Abcdefg1", "email": "alice.smith-1@mail.example.ru"}, fields)
}

func TestNewAccount_ReportsEveryField(t *testing.T) {
	_, err := Payload(map[string]any{
		"name":     "Alice99",
		"password": "short",
		"email":    "alice@mailru",
	}, NewAccount)
	vs := violationsOf(t, err)
	assert.Equal(t, []string{"name", "password", "email"}, fieldsOf(vs))
}

func TestNewAccount_MissingAndNullAreRequired(t *testing.T) {
	_, err := Payload(map[string]any{"name": nil}, NewAccount)
	vs := violationsOf(t, err)
	require.Len(t, vs, 3)
	for _, v := range vs {
		assert.Equal(t, "field required", v.Message)
	}
}

func TestNewAccount_RejectsNonString(t *testing.T) {
	_, err := Payload(map[string]any{"name": 42.0, "password": "Abcdefg1", "email": "a@b.co"}, NewAccount)
	vs := violationsOf(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, Violation{Field: "name", Message: "must be a string"}, vs[0])
}

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Alice", true},
		{"Борис", true},
		{"", false},
		{"al ice", false},
		{"alice1", false},
		{"alice_", false},
	}
	for _, tt := range tests {
		_, err := Payload(map[string]any{"name": tt.name}, PatchAccount)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		password string
		message  string
	}{
		{"Abcdefg1", ""},
		{"abcdefg1", "the password must contain at least one uppercase letter"},
		{"ABCDEFG1", "the password must contain at least one lowercase letter"},
		{"Abcdefgh", "the password must contain at least one number"},
		{"Abcde1", "the password is too short, the minimum length is 8 characters"},
		{"Пароль12", ""},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			_, err := Payload(map[string]any{"password": tt.password}, PatchAccount)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			vs := violationsOf(t, err)
			require.Len(t, vs, 1)
			assert.Equal(t, tt.message, vs[0].Message)
		})
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"test@mail.ru", "a.b-c@d-e.f.com", "x_y@z.io"}
	invalid := []string{"test@mailru", "testmail.ru", "@mail.ru", "a@b.", "a b@c.de", "a@b.c-"}

	for _, e := range valid {
		_, err := Payload(map[string]any{"email": e}, PatchAccount)
		assert.NoError(t, err, e)
	}
	for _, e := range invalid {
		_, err := Payload(map[string]any{"email": e}, PatchAccount)
		assert.Error(t, err, e)
	}
}

func TestListingLengthBoundaries(t *testing.T) {
	tests := []struct {
		title string
		valid bool
	}{
		{strings.Repeat("t", 1), false},
		{strings.Repeat("t", 2), true},
		{strings.Repeat("t", 300), true},
		{strings.Repeat("t", 301), false},
		{strings.Repeat("ж", 300), true},
	}
	for _, tt := range tests {
		_, err := Payload(map[string]any{"title": tt.title, "description": "fine"}, NewListing)
		if tt.valid {
			assert.NoError(t, err, "len %d", len([]rune(tt.title)))
		} else {
			vs := violationsOf(t, err)
			assert.Equal(t, []string{"title"}, fieldsOf(vs))
		}
	}

	_, err := Payload(map[string]any{"title": "ok", "description": strings.Repeat("d", 500)}, NewListing)
	assert.NoError(t, err)
	_, err = Payload(map[string]any{"title": "ok", "description": strings.Repeat("d", 501)}, NewListing)
	assert.Error(t, err)
}

func TestPatchShapes_PruneAbsentFields(t *testing.T) {
	fields, err := Payload(map[string]any{}, PatchListing)
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = Payload(map[string]any{"description": "new text", "title": nil, "owner_id": 7.0}, PatchListing)
	require.NoError(t, err)
	assert.Equal(t, Fields{"description": "new text"}, fields)
	assert.Nil(t, fields.Ptr("title"))
	require.NotNil(t, fields.Ptr("description"))
	assert.Equal(t, "new text", *fields.Ptr("description"))
}

func TestUnknownShape(t *testing.T) {
	_, err := Payload(map[string]any{}, Shape("Nope"))
	require.Error(t, err)
	var verr *Error
	assert.False(t, errors.As(err, &verr))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Violations: []Violation{{Field: "title", Message: "too short"}, {Field: "description", Message: "too long"}}}
	assert.Equal(t, "validation failed: title: too short; description: too long", err.Error())
}
