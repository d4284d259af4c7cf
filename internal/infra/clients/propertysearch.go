// Package clients holds the HTTP adapters for the remote collaborators:
// the property-search backend and the pricing backend. Both are plain
// POST-JSON services; response parsing stays minimal and any non-2xx
// answer is surfaced as an error carrying a body snippet.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appavailability "github.com/dev-master21/nova-site-sub000/internal/app/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// PropertySearchClient asks the property backend for sibling listings that
// could host an unavailable stay.
type PropertySearchClient struct {
	Client   *http.Client
	Endpoint string
	Logger   *slog.Logger
}

type similarPropertiesRequest struct {
	PropertyID  string `json:"property_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	NightsCount int    `json:"nights_count"`
}

type similarPropertiesResponse struct {
	Properties []appavailability.Property `json:"properties"`
}

// SimilarProperties fetches candidate listings for the given window.
func (c *PropertySearchClient) SimilarProperties(ctx context.Context, propertyID string, checkIn, checkOut calendar.Date, nights int) ([]appavailability.Property, error) {
	if c == nil || c.Client == nil {
		return nil, errors.New("propertysearch: http client not configured")
	}
	if c.Endpoint == "" {
		return nil, errors.New("propertysearch: endpoint not configured")
	}

	payload := similarPropertiesRequest{
		PropertyID:  propertyID,
		StartDate:   string(checkIn),
		EndDate:     string(checkOut),
		NightsCount: nights,
	}
	var decoded similarPropertiesResponse
	if err := c.postJSON(ctx, payload, &decoded); err != nil {
		if c.Logger != nil {
			c.Logger.Error("property search request failed", "property_id", propertyID, "error", err)
		}
		return nil, err
	}
	return decoded.Properties, nil
}

func (c *PropertySearchClient) postJSON(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("propertysearch: status %d: %s", resp.StatusCode, string(snippet))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ appavailability.PropertySearcher = (*PropertySearchClient)(nil)
