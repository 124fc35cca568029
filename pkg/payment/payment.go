// Package payment is the client for the hosted payment processor. All
// amounts are in minor currency units (e.g. cents).
package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChargeRequest asks the processor to charge a payment-method token.
type ChargeRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Source   string `json:"source"` // client-supplied payment-method token
}

// Charge is the processor's record of a successful charge.
type Charge struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

// Processor charges payment-method tokens.
type Processor interface {
	Charge(req ChargeRequest) (*Charge, error)
}

// HTTPClient talks to the processor's REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a processor client for the given API endpoint.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chargeError struct {
	Error string `json:"error"`
}

// Charge posts a charge request and returns the processor's charge
// record. Any non-2xx response is an error carrying the processor's
// message.
func (c *HTTPClient) Charge(req ChargeRequest) (*Charge, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr chargeError
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &perr) == nil && perr.Error != "" {
			return nil, fmt.Errorf("processor declined charge: %s", perr.Error)
		}
		return nil, fmt.Errorf("processor returned status %d", resp.StatusCode)
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("failed to decode charge response: %w", err)
	}
	if charge.ID == "" {
		return nil, fmt.Errorf("processor returned a charge without an id")
	}
	return &charge, nil
}
