// internal/api/solicitacoes.go
//
// Endpoints for the supply request entity, including the public tracking
// lookup (rastrear). Creation returns the server-generated tracking code.

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ipa-pe/safra/internal/rastreio"
	"github.com/ipa-pe/safra/internal/solicitacao"
)

// CriarSolicitacaoResponse is the creation response envelope.
type CriarSolicitacaoResponse struct {
	Message        string                  `json:"message"`
	CodigoRastreio string                  `json:"codigoRastreio"`
	Solicitacao    solicitacao.Solicitacao `json:"solicitacao"`
}

// ListarSolicitacoes returns every request visible to the caller.
func (c *Client) ListarSolicitacoes(ctx context.Context) ([]solicitacao.Solicitacao, error) {
	var out []solicitacao.Solicitacao
	if err := c.get(ctx, "/solicitacoes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuscarSolicitacao fetches a request by its numeric identifier.
func (c *Client) BuscarSolicitacao(ctx context.Context, id int64) (*solicitacao.Solicitacao, error) {
	var out solicitacao.Solicitacao
	if err := c.get(ctx, fmt.Sprintf("/solicitacoes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SolicitacoesPorStatus lists requests in a given status.
func (c *Client) SolicitacoesPorStatus(ctx context.Context, status string) ([]solicitacao.Solicitacao, error) {
	var out []solicitacao.Solicitacao
	if err := c.get(ctx, "/solicitacoes/status/"+url.PathEscape(status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SolicitacoesPorSolicitante lists requests filed by the agent with the
// given CPF.
func (c *Client) SolicitacoesPorSolicitante(ctx context.Context, cpf string) ([]solicitacao.Solicitacao, error) {
	var out []solicitacao.Solicitacao
	if err := c.get(ctx, "/solicitacoes/solicitante/"+url.PathEscape(cpf), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CriarSolicitacao submits a complete request. Single-shot: the caller is
// responsible for not resending while a submission is in flight.
func (c *Client) CriarSolicitacao(ctx context.Context, s solicitacao.Solicitacao) (*CriarSolicitacaoResponse, error) {
	var out CriarSolicitacaoResponse
	if err := c.post(ctx, "/solicitacoes", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AtualizarSolicitacao replaces a request.
func (c *Client) AtualizarSolicitacao(ctx context.Context, id int64, s solicitacao.Solicitacao) (*solicitacao.Solicitacao, error) {
	var out solicitacao.Solicitacao
	if err := c.put(ctx, fmt.Sprintf("/solicitacoes/%d", id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AtualizarStatusSolicitacao patches just the status.
func (c *Client) AtualizarStatusSolicitacao(ctx context.Context, id int64, status string) error {
	query := url.Values{"status": {status}}
	return c.patch(ctx, fmt.Sprintf("/solicitacoes/%d/status", id), query, nil, nil)
}

// DeletarSolicitacao removes a request.
func (c *Client) DeletarSolicitacao(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/solicitacoes/%d", id))
}

// Rastrear looks a request up by its public tracking code.
func (c *Client) Rastrear(ctx context.Context, codigo string) (*rastreio.Pedido, error) {
	var out rastreio.Pedido
	if err := c.get(ctx, "/solicitacoes/rastrear/"+url.PathEscape(codigo), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
