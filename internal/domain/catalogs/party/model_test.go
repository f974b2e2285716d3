package party

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/core/apperror"
)

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	p := New("PTY-001", "Alice", "Johnson", false)
	assert.Equal(t, "Alice Johnson", p.DisplayName())
	assert.Equal(t, "Alice Johnson", p.Name)

	single := New("PTY-002", "Northwind", "", true)
	assert.Equal(t, "Northwind", single.DisplayName())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(p *Party)
		wantField string
	}{
		{
			name:   "valid customer",
			mutate: func(p *Party) {},
		},
		{
			name: "valid with contacts",
			mutate: func(p *Party) {
				p.Email = strPtr("alice@example.com")
				p.Phone = strPtr("+1 (555) 123-4567")
			},
		},
		{
			name: "missing first name",
			mutate: func(p *Party) {
				p.FirstName = ""
			},
			wantField: "firstName",
		},
		{
			name: "malformed email",
			mutate: func(p *Party) {
				p.Email = strPtr("not-an-email")
			},
			wantField: "email",
		},
		{
			name: "email without tld",
			mutate: func(p *Party) {
				p.Email = strPtr("alice@localhost")
			},
			wantField: "email",
		},
		{
			name: "malformed phone",
			mutate: func(p *Party) {
				p.Phone = strPtr("call me")
			},
			wantField: "phone",
		},
		{
			name: "phone too short",
			mutate: func(p *Party) {
				p.Phone = strPtr("+12")
			},
			wantField: "phone",
		},
		{
			name: "empty contact strings are allowed",
			mutate: func(p *Party) {
				p.Email = strPtr("")
				p.Phone = strPtr("")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("PTY-001", "Alice", "Johnson", false)
			tt.mutate(p)

			err := p.Validate(ctx)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Details["field"])
		})
	}
}

func TestValidate_DerivesName(t *testing.T) {
	p := New("PTY-001", "Bob", "Martinez", false)
	p.Name = ""

	require.NoError(t, p.Validate(context.Background()))
	assert.Equal(t, "Bob Martinez", p.Name)
}
