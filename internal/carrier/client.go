// Package carrier proxies Nova Poshta city and warehouse lookups for checkout.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mattress-shop/internal/config"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

const (
	cityLimit      = 20
	warehouseLimit = 50
)

// ErrUpstream is returned when the carrier API fails or rejects a request.
var ErrUpstream = errors.New("carrier API error")

// City is a settlement that can receive deliveries.
type City struct {
	Ref            string `json:"ref"`
	DeliveryCity   string `json:"deliveryCity"`
	Name           string `json:"name"`
	Present        string `json:"present"`
	Area           string `json:"area"`
	Region         string `json:"region"`
	WarehouseCount int    `json:"warehouseCount"`
}

// Warehouse is a branch or parcel locker in a city.
type Warehouse struct {
	Ref          string `json:"ref"`
	Number       string `json:"number"`
	Description  string `json:"description"`
	ShortAddress string `json:"shortAddress"`
	CityRef      string `json:"cityRef"`
}

// Client queries the carrier API and caches results.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cities     *expirable.LRU[string, []City]
	warehouses *expirable.LRU[string, []Warehouse]
	logger     zerolog.Logger
}

// NewClient creates a new carrier client. Cached lookups are bounded by
// cfg.CacheSize per lookup kind and expire after cfg.CacheTTL.
func NewClient(cfg config.NovaPoshtaConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cities:     expirable.NewLRU[string, []City](cfg.CacheSize, nil, cfg.CacheTTL),
		warehouses: expirable.NewLRU[string, []Warehouse](cfg.CacheSize, nil, cfg.CacheTTL),
		logger:     logger.With().Str("component", "novaposhta-client").Logger(),
	}
}

type apiRequest struct {
	APIKey           string         `json:"apiKey"`
	ModelName        string         `json:"modelName"`
	CalledMethod     string         `json:"calledMethod"`
	MethodProperties map[string]any `json:"methodProperties"`
}

type apiResponse[T any] struct {
	Success bool     `json:"success"`
	Data    []T      `json:"data"`
	Errors  []string `json:"errors"`
}

type settlementPage struct {
	TotalCount int `json:"TotalCount"`
	Addresses  []struct {
		Ref             string `json:"Ref"`
		DeliveryCity    string `json:"DeliveryCity"`
		MainDescription string `json:"MainDescription"`
		Present         string `json:"Present"`
		Area            string `json:"Area"`
		Region          string `json:"Region"`
		Warehouses      int    `json:"Warehouses"`
	} `json:"Addresses"`
}

type warehouseRecord struct {
	Ref          string `json:"Ref"`
	Number       string `json:"Number"`
	Description  string `json:"Description"`
	ShortAddress string `json:"ShortAddress"`
	CityRef      string `json:"CityRef"`
}

func cacheKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

// SearchCities finds settlements whose name matches query.
func (c *Client) SearchCities(ctx context.Context, query string) ([]City, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []City{}, nil
	}

	key := cacheKey("searchSettlements", query)
	if cities, ok := c.cities.Get(key); ok {
		return cities, nil
	}

	pages, err := call[settlementPage](ctx, c, "Address", "searchSettlements", map[string]any{
		"CityName": query,
		"Limit":    fmt.Sprint(cityLimit),
		"Page":     "1",
	})
	if err != nil {
		return nil, err
	}

	cities := []City{}
	for _, page := range pages {
		for _, a := range page.Addresses {
			cities = append(cities, City{
				Ref:            a.Ref,
				DeliveryCity:   a.DeliveryCity,
				Name:           a.MainDescription,
				Present:        a.Present,
				Area:           a.Area,
				Region:         a.Region,
				WarehouseCount: a.Warehouses,
			})
		}
	}

	c.cities.Add(key, cities)

	return cities, nil
}

// Warehouses lists warehouses of the city identified by cityRef, optionally
// filtered by query.
func (c *Client) Warehouses(ctx context.Context, cityRef, query string) ([]Warehouse, error) {
	cityRef = strings.TrimSpace(cityRef)
	if cityRef == "" {
		return []Warehouse{}, nil
	}

	key := cacheKey("getWarehouses", cityRef, query)
	if warehouses, ok := c.warehouses.Get(key); ok {
		return warehouses, nil
	}

	props := map[string]any{
		"CityRef": cityRef,
		"Limit":   fmt.Sprint(warehouseLimit),
		"Page":    "1",
	}
	if q := strings.TrimSpace(query); q != "" {
		props["FindByString"] = q
	}

	records, err := call[warehouseRecord](ctx, c, "AddressGeneral", "getWarehouses", props)
	if err != nil {
		return nil, err
	}

	warehouses := make([]Warehouse, 0, len(records))
	for _, w := range records {
		warehouses = append(warehouses, Warehouse(w))
	}

	c.warehouses.Add(key, warehouses)

	return warehouses, nil
}

// call posts one API request and returns the decoded data array.
func call[T any](ctx context.Context, c *Client, modelName, method string, props map[string]any) ([]T, error) {
	logger := c.logger.With().Str("called_method", method).Logger()

	body, err := json.Marshal(apiRequest{
		APIKey:           c.apiKey,
		ModelName:        modelName,
		CalledMethod:     method,
		MethodProperties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode carrier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build carrier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("carrier request failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error().Int("status", resp.StatusCode).Str("body", string(snippet)).Msg("carrier returned error status")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var decoded apiResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logger.Error().Err(err).Msg("failed to decode carrier response")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !decoded.Success {
		logger.Warn().Strs("errors", decoded.Errors).Msg("carrier rejected request")
		return nil, fmt.Errorf("%w: %s", ErrUpstream, strings.Join(decoded.Errors, "; "))
	}

	return decoded.Data, nil
}
