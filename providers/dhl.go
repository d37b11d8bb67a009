package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	dhlCreateURL = "https://api-sandbox.dhl.com/dgff/transportation/shipment-booking"
	dhlTrackURL  = "https://api-sandbox.dhl.com/dgff/transportation/v2/shipment-tracking"
)

// DHLProvider implements CarrierProvider against the DHL sandbox API.
type DHLProvider struct {
	apiKey     string
	httpClient *http.Client
}

func NewDHLProvider(apiKey string) *DHLProvider {
	return &DHLProvider{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- DHL API request/response structs ----

type dhlDimensions struct {
	Length int `json:"length"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type dhlPackage struct {
	Weight     float64       `json:"weight"`
	Dimensions dhlDimensions `json:"dimensions"`
}

type dhlParty struct {
	Name    string         `json:"name"`
	Address CarrierAddress `json:"address"`
}

type dhlShipmentRequest struct {
	ShipmentRequest struct {
		Shipper     dhlParty     `json:"shipper"`
		Receiver    dhlParty     `json:"receiver"`
		Packages    []dhlPackage `json:"packages"`
		ServiceType string       `json:"serviceType"`
	} `json:"shipmentRequest"`
}

type dhlShipmentResponse struct {
	Shipments []struct {
		TrackingNumber string `json:"trackingNumber"`
		Status         string `json:"status"`
	} `json:"shipments"`
}

// CreateShipment books a shipment and returns the carrier tracking number.
func (p *DHLProvider) CreateShipment(ctx context.Context, req CreateShipmentRequest) (string, error) {
	body := dhlShipmentRequest{}
	body.ShipmentRequest.Shipper = dhlParty{Name: req.Shipper.Name, Address: req.Shipper}
	body.ShipmentRequest.Receiver = dhlParty{Name: req.Receiver.Name, Address: req.Receiver}
	body.ShipmentRequest.Packages = []dhlPackage{
		{
			Weight:     req.WeightKg,
			Dimensions: dhlDimensions{Length: 30, Width: 30, Height: 30},
		},
	}
	body.ShipmentRequest.ServiceType = "DHL Express Worldwide"

	var resp dhlShipmentResponse
	if err := p.doRequest(ctx, http.MethodPost, dhlCreateURL, nil, body, &resp); err != nil {
		return "", fmt.Errorf("dhl CreateShipment: %w", err)
	}

	if len(resp.Shipments) == 0 {
		return "", fmt.Errorf("dhl CreateShipment: no shipments in response")
	}
	if resp.Shipments[0].TrackingNumber == "" {
		return "", fmt.Errorf("dhl CreateShipment: tracking number missing in response")
	}
	return resp.Shipments[0].TrackingNumber, nil
}

// Track returns the carrier's current status for a tracking number.
func (p *DHLProvider) Track(ctx context.Context, trackingNumber string) (string, error) {
	params := url.Values{"trackingNumber": {trackingNumber}}

	var resp dhlShipmentResponse
	if err := p.doRequest(ctx, http.MethodGet, dhlTrackURL, params, nil, &resp); err != nil {
		return "", fmt.Errorf("dhl Track: %w", err)
	}

	if len(resp.Shipments) == 0 {
		return "", fmt.Errorf("dhl Track: shipment not found")
	}
	return resp.Shipments[0].Status, nil
}

// ---- HTTP helper ----

func (p *DHLProvider) doRequest(ctx context.Context, method, rawURL string, params url.Values, body interface{}, out interface{}) error {
	if params != nil {
		rawURL = rawURL + "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DHL-API-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("dhl API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
