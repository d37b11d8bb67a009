package providers

import "context"

// CarrierProvider abstracts the external shipping carrier. CreateShipment
// books a shipment remotely and returns the carrier's tracking number; Track
// returns the carrier's current status string for a tracking number.
type CarrierProvider interface {
	CreateShipment(ctx context.Context, req CreateShipmentRequest) (string, error)
	Track(ctx context.Context, trackingNumber string) (string, error)
}

// CarrierAddress is a shipping address in the carrier's terms.
type CarrierAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"countryCode"`
}

// CreateShipmentRequest is the payload for booking a shipment with a carrier.
type CreateShipmentRequest struct {
	OrderID  string
	Shipper  CarrierAddress
	Receiver CarrierAddress
	WeightKg float64
}
