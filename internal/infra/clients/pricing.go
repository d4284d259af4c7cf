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

// PricingClient delegates price computation for a stay to the pricing
// backend. Seasonal and monthly rate rules live entirely on that side;
// this service only forwards the stay boundaries.
type PricingClient struct {
	Client   *http.Client
	Endpoint string
	Logger   *slog.Logger
}

type calculatePriceRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

// Quote calls the pricing service for the given stay.
func (c *PricingClient) Quote(ctx context.Context, propertyID string, checkIn, checkOut calendar.Date) (appavailability.Quote, error) {
	var zero appavailability.Quote
	if c == nil || c.Client == nil {
		return zero, errors.New("pricing: http client not configured")
	}
	if c.Endpoint == "" {
		return zero, errors.New("pricing: endpoint not configured")
	}

	body, err := json.Marshal(calculatePriceRequest{
		PropertyID: propertyID,
		CheckIn:    string(checkIn),
		CheckOut:   string(checkOut),
	})
	if err != nil {
		return zero, err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(request)
	if err != nil {
		c.logError(propertyID, err)
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("pricing: status %d: %s", resp.StatusCode, string(snippet))
		c.logError(propertyID, err)
		return zero, err
	}

	var quote appavailability.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		c.logError(propertyID, err)
		return zero, err
	}
	return quote, nil
}

func (c *PricingClient) logError(propertyID string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error("pricing request failed", "property_id", propertyID, "error", err)
}

var _ appavailability.PriceQuoter = (*PricingClient)(nil)
