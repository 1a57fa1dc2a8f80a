package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"markethub_front_end/internal/models"
	"markethub_front_end/internal/remote"
)

var ErrProductNotFound = errors.New("product not found")

// Client lit le catalogue produits de l'API distante
type Client struct {
	api *remote.Client
}

func New(api *remote.Client) *Client {
	return &Client{api: api}
}

// remoteProduct est la forme renvoyée par l'API. La description courte
// devient Description, la description complète LongDescription.
type remoteProduct struct {
	ID               remote.ID `json:"id" validate:"required"`
	Name             string    `json:"name"`
	Price            float64   `json:"price" validate:"gte=0"`
	DiscountPrice    *float64  `json:"discountPrice"`
	ShortDescription string    `json:"shortDescription"`
	Description      string    `json:"description"`
	Gallery          []string  `json:"gallery"`
	Image            string    `json:"image"`
	Category         string    `json:"category"`
	Vendor           string    `json:"vendor"`
	Stock            int       `json:"stock"`
}

func (rp remoteProduct) toModel() models.Product {
	images := rp.Gallery
	if len(images) == 0 && rp.Image != "" {
		images = []string{rp.Image}
	}
	if images == nil {
		images = []string{}
	}
	return models.Product{
		ID:              string(rp.ID),
		Name:            rp.Name,
		Price:           rp.Price,
		DiscountPrice:   rp.DiscountPrice,
		Description:     rp.ShortDescription,
		LongDescription: rp.Description,
		Images:          images,
		Category:        rp.Category,
		Vendor:          rp.Vendor,
		Stock:           rp.Stock,
	}
}

// Products retourne la liste du catalogue. L'API peut répondre avec un
// tableau nu ou une enveloppe {"data": [...]}.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.api.Get(ctx, "/products", &raw); err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("décodage catalogue: %w", err)
		}
		raw = envelope.Data
	}

	var decoded []remoteProduct
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("décodage catalogue: %w", err)
	}

	products := make([]models.Product, 0, len(decoded))
	for _, rp := range decoded {
		if models.Validate(rp) != nil {
			continue
		}
		products = append(products, rp.toModel())
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var raw json.RawMessage
	err := c.api.Get(ctx, "/products/"+url.PathEscape(id), &raw)
	var apiErr *remote.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	var rp remoteProduct
	if err := decodeOne(raw, &rp); err != nil {
		return models.Product{}, err
	}
	if err := models.Validate(rp); err != nil {
		return models.Product{}, fmt.Errorf("produit %s invalide: %w", id, err)
	}
	return rp.toModel(), nil
}

func decodeOne(raw json.RawMessage, rp *remoteProduct) error {
	var envelope struct {
		Data *remoteProduct `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		*rp = *envelope.Data
		return nil
	}
	if err := json.Unmarshal(raw, rp); err != nil {
		return fmt.Errorf("décodage produit: %w", err)
	}
	return nil
}
