package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{FullName: "Ann", Email: "a@x.com", Password: "p", Username: "ann"}
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr bool
	}{
		{"valid", func(r *RegisterRequest) {}, false},
		{"trims whitespace", func(r *RegisterRequest) { r.Username = "  ann  "; r.Email = " a@x.com " }, false},
		{"missing fullName", func(r *RegisterRequest) { r.FullName = "" }, true},
		{"whitespace fullName", func(r *RegisterRequest) { r.FullName = "   " }, true},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, true},
		{"email without at", func(r *RegisterRequest) { r.Email = "ax.com" }, true},
		{"email without domain dot", func(r *RegisterRequest) { r.Email = "a@xcom" }, true},
		{"email with spaces", func(r *RegisterRequest) { r.Email = "a b@x.com" }, true},
		{"missing password", func(r *RegisterRequest) { r.Password = "" }, true},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"email only", LoginRequest{Email: "a@x.com", Password: "p"}, false},
		{"username only", LoginRequest{Username: "ann", Password: "p"}, false},
		{"both identifiers", LoginRequest{Email: "a@x.com", Username: "ann", Password: "p"}, false},
		{"no identifier", LoginRequest{Password: "p"}, true},
		{"whitespace identifier", LoginRequest{Username: "   ", Password: "p"}, true},
		{"no password", LoginRequest{Username: "ann"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestIdentifierPrefersEmail(t *testing.T) {
	req := LoginRequest{Email: "a@x.com", Username: "ann"}
	require.Equal(t, "a@x.com", req.Identifier())

	req = LoginRequest{Username: "ann"}
	require.Equal(t, "ann", req.Identifier())
}

func TestUserJSONHidesSecrets(t *testing.T) {
	token := "refresh-token-value"
	user := User{
		ID:           "u1",
		Username:     "ann",
		Email:        "a@x.com",
		PasswordHash: "$2a$12$hash",
		RefreshToken: &token,
	}

	raw, err := json.Marshal(&user)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hash")
	require.NotContains(t, string(raw), "refresh-token-value")
}

func TestSanitizedZeroesSecretsOnCopy(t *testing.T) {
	token := "t"
	user := &User{ID: "u1", PasswordHash: "h", RefreshToken: &token}

	clean := user.Sanitized()
	require.Empty(t, clean.PasswordHash)
	require.Nil(t, clean.RefreshToken)

	// Orijinal değişmemeli
	require.Equal(t, "h", user.PasswordHash)
	require.NotNil(t, user.RefreshToken)
}
