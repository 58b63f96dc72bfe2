// internal/api/auth.go

package api

import (
	"context"

	"github.com/ipa-pe/safra/internal/session"
)

// Credentials is the login request body.
type Credentials struct {
	CPF   string `json:"cpf"`
	Senha string `json:"senha"`
}

// Registration is the register request body for new field agents.
type Registration struct {
	Nome         string `json:"nome"`
	CPF          string `json:"cpf"`
	Senha        string `json:"senha"`
	Telefone     string `json:"telefone"`
	Email        string `json:"email"`
	MatriculaIPA string `json:"matriculaIpa,omitempty"`
	LocalAtuacao string `json:"localAtuacao,omitempty"`
	Cidade       string `json:"cidade,omitempty"`
	UF           string `json:"uf,omitempty"`
}

// Login authenticates and returns the raw payload for the session store to
// normalize.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.LoginPayload, error) {
	var payload session.LoginPayload
	if err := c.post(ctx, "/auth/login", creds, &payload); err != nil {
		return session.LoginPayload{}, err
	}
	return payload, nil
}

// Register creates a new agent account.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.post(ctx, "/auth/register", reg, nil)
}

// ValidateToken asks the backend whether the current bearer token is still
// accepted.
func (c *Client) ValidateToken(ctx context.Context) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := c.get(ctx, "/auth/validate", nil, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}
