package tracker

// Status is the normalized delivery status shared by all carriers.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPickedUp       Status = "picked_up"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusUnknown        Status = "unknown"
)

// TrackingResult is the unified output of any tracking lookup. A failed
// lookup still produces a fully-shaped result with Success=false and an
// empty timeline; carriers never surface business failures as Go errors.
type TrackingResult struct {
	TrackingNumber string          `json:"trackingNumber"`
	Carrier        Carrier         `json:"carrier"`
	Status         Status          `json:"status"`
	Timeline       []TrackingEvent `json:"timeline"`

	// Enrichment fields, present only when the carrier reported them.
	ETA              string       `json:"eta,omitempty"`
	Origin           string       `json:"origin,omitempty"`
	Destination      string       `json:"destination,omitempty"`
	Shipper          *PartyInfo   `json:"shipper,omitempty"`
	Recipient        *PartyInfo   `json:"recipient,omitempty"`
	PackageInfo      *PackageInfo `json:"packageInfo,omitempty"`
	ServiceInfo      *ServiceInfo `json:"serviceInfo,omitempty"`
	DateInfo         *DateInfo    `json:"dateInfo,omitempty"`
	SignedBy         string       `json:"signedBy,omitempty"`
	DeliveryLocation string       `json:"deliveryLocation,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TrackingEvent is a single carrier scan. Events are value objects: rebuilt
// in full on every lookup, ordered most-recent-first in the timeline.
type TrackingEvent struct {
	Date        string `json:"date"`           // YYYY-MM-DD
	Time        string `json:"time"`           // HH:MM, empty when unknown
	Status      Status `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// PartyInfo identifies the shipper or recipient of a shipment.
// Absence of a field means the carrier did not report it.
type PartyInfo struct {
	Contact *ContactInfo `json:"contact,omitempty"`
	Address *AddressInfo `json:"address,omitempty"`
}

// ContactInfo carries person/company contact details.
type ContactInfo struct {
	PersonName  string `json:"personName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AddressInfo carries a partial address as reported by the carrier.
type AddressInfo struct {
	City            string `json:"city,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
}

// PackageInfo carries physical package details.
type PackageInfo struct {
	Count       int    `json:"count,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Dimensions  string `json:"dimensions,omitempty"`
	Packaging   string `json:"packaging,omitempty"`
}

// ServiceInfo carries the carrier service used for the shipment.
type ServiceInfo struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DateInfo carries the shipment date milestones reported by the carrier.
type DateInfo struct {
	ShipDate          string `json:"shipDate,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
	ActualDelivery    string `json:"actualDelivery,omitempty"`
	PickupDate        string `json:"pickupDate,omitempty"`
	DeliveryWindow    string `json:"deliveryWindow,omitempty"`
}

// ShipmentSummary is the thin per-shipment shape returned by batch lookups
// and account enumeration, sized for table display rather than detail views.
type ShipmentSummary struct {
	TrackingNumber     string `json:"trackingNumber"`
	StatusCode         string `json:"statusCode,omitempty"`
	StatusDescription  string `json:"statusDescription,omitempty"`
	Status             Status `json:"status"`
	ShipDate           string `json:"shipDate,omitempty"`
	EstimatedDelivery  string `json:"estimatedDelivery,omitempty"`
	ActualDelivery     string `json:"actualDelivery,omitempty"`
	OriginCity         string `json:"originCity,omitempty"`
	OriginCountry      string `json:"originCountry,omitempty"`
	DestinationCity    string `json:"destinationCity,omitempty"`
	DestinationCountry string `json:"destinationCountry,omitempty"`
	ServiceDescription string `json:"serviceDescription,omitempty"`
	Weight             string `json:"weight,omitempty"`
}

// ShipmentList is the result of a batch lookup or account enumeration.
// Partial sub-request failures leave Success=true with whatever was parsed.
type ShipmentList struct {
	Success   bool              `json:"success"`
	Shipments []ShipmentSummary `json:"shipments"`
	Error     string            `json:"error,omitempty"`
}

// FailedResult builds the failure-shaped TrackingResult used for every
// business-level error: misconfiguration, upstream rejection, not-found
// and transport failures all come back through here.
func FailedResult(c Carrier, trackingNumber, msg string) *TrackingResult {
	return &TrackingResult{
		TrackingNumber: trackingNumber,
		Carrier:        c,
		Status:         StatusUnknown,
		Timeline:       []TrackingEvent{},
		Success:        false,
		Error:          msg,
	}
}

// FailedList builds the failure-shaped ShipmentList.
func FailedList(msg string) *ShipmentList {
	return &ShipmentList{
		Success:   false,
		Shipments: []ShipmentSummary{},
		Error:     msg,
	}
}
