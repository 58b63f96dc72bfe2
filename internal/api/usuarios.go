// internal/api/usuarios.go
//
// Legacy plain-user entity kept for compatibility with the first backend
// generation; newer deployments manage agents through /auth.

package api

import (
	"context"
	"fmt"
)

// Usuario is the legacy user record.
type Usuario struct {
	ID    int64  `json:"id,omitempty"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
	Tipo  string `json:"tipo,omitempty"`
}

// ListarUsuarios returns all legacy users.
func (c *Client) ListarUsuarios(ctx context.Context) ([]Usuario, error) {
	var out []Usuario
	if err := c.get(ctx, "/usuarios", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuscarUsuario fetches one legacy user.
func (c *Client) BuscarUsuario(ctx context.Context, id int64) (*Usuario, error) {
	var out Usuario
	if err := c.get(ctx, fmt.Sprintf("/usuarios/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CriarUsuario creates a legacy user.
func (c *Client) CriarUsuario(ctx context.Context, u Usuario) (*Usuario, error) {
	var out Usuario
	if err := c.post(ctx, "/usuarios", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AtualizarUsuario replaces a legacy user.
func (c *Client) AtualizarUsuario(ctx context.Context, id int64, u Usuario) (*Usuario, error) {
	var out Usuario
	if err := c.put(ctx, fmt.Sprintf("/usuarios/%d", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletarUsuario removes a legacy user.
func (c *Client) DeletarUsuario(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/usuarios/%d", id))
}
