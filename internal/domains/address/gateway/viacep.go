package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-backend/internal/domains/address/model"
)

// PostalLookup resolves a CEP into an address
type PostalLookup interface {
	Lookup(ctx context.Context, postalCode string) (*model.Address, error)
}

// ViaCEPClient calls GET {baseURL}/ws/{cep}/json/
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewViaCEPClient(baseURL string, timeout time.Duration) *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	// "erro": true (older API also sends the string "true")
	Erro interface{} `json:"erro,omitempty"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func (c *ViaCEPClient) Lookup(ctx context.Context, postalCode string) (*model.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, model.ErrInvalidPostalCode
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", model.ErrLookupUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var data viaCEPResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: invalid body: %v", model.ErrLookupUnavailable, err)
	}
	if data.notFound() {
		return nil, model.ErrPostalCodeNotFound
	}

	return &model.Address{
		PostalCode:   postalCode,
		Street:       data.Logradouro,
		Complement:   data.Complemento,
		Neighborhood: data.Bairro,
		City:         data.Localidade,
		State:        data.UF,
	}, nil
}
