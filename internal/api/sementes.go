// internal/api/sementes.go
//
// Endpoints for the seed catalog managed by administrators, plus the two
// dedicated patches (status toggle, stock adjustment).

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ipa-pe/safra/internal/semente"
)

// ListarSementes returns the whole catalog.
func (c *Client) ListarSementes(ctx context.Context) ([]semente.Semente, error) {
	var out []semente.Semente
	if err := c.get(ctx, "/sementes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListarSementesAtivas returns only active catalog items.
func (c *Client) ListarSementesAtivas(ctx context.Context) ([]semente.Semente, error) {
	var out []semente.Semente
	if err := c.get(ctx, "/sementes/ativas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SementesPorTipo lists items of one supply type.
func (c *Client) SementesPorTipo(ctx context.Context, tipo string) ([]semente.Semente, error) {
	var out []semente.Semente
	if err := c.get(ctx, "/sementes/tipo/"+url.PathEscape(tipo), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SementesPorCultura lists items for one crop.
func (c *Client) SementesPorCultura(ctx context.Context, cultura string) ([]semente.Semente, error) {
	var out []semente.Semente
	if err := c.get(ctx, "/sementes/cultura/"+url.PathEscape(cultura), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuscarSementesPorNome searches the catalog server-side by name.
func (c *Client) BuscarSementesPorNome(ctx context.Context, nome string) ([]semente.Semente, error) {
	var out []semente.Semente
	query := url.Values{"nome": {nome}}
	if err := c.get(ctx, "/sementes/buscar", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BuscarSemente fetches one catalog item.
func (c *Client) BuscarSemente(ctx context.Context, id int64) (*semente.Semente, error) {
	var out semente.Semente
	if err := c.get(ctx, fmt.Sprintf("/sementes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CriarSemente adds a catalog item.
func (c *Client) CriarSemente(ctx context.Context, s semente.Semente) (*semente.Semente, error) {
	var out semente.Semente
	if err := c.post(ctx, "/sementes", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AtualizarSemente replaces a catalog item.
func (c *Client) AtualizarSemente(ctx context.Context, id int64, s semente.Semente) (*semente.Semente, error) {
	var out semente.Semente
	if err := c.put(ctx, fmt.Sprintf("/sementes/%d", id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AlternarStatusSemente flips a catalog item between active and inactive.
func (c *Client) AlternarStatusSemente(ctx context.Context, id int64) error {
	return c.patch(ctx, fmt.Sprintf("/sementes/%d/status", id), nil, struct{}{}, nil)
}

// AtualizarEstoqueSemente adjusts the available stock.
func (c *Client) AtualizarEstoqueSemente(ctx context.Context, id int64, quantidade float64) error {
	query := url.Values{"quantidade": {strconv.FormatFloat(quantidade, 'f', -1, 64)}}
	return c.patch(ctx, fmt.Sprintf("/sementes/%d/estoque", id), query, nil, nil)
}

// DeletarSemente removes a catalog item.
func (c *Client) DeletarSemente(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/sementes/%d", id))
}
