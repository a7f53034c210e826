package fedex

import (
	"context"
)

// APIClient defines the interface for FedEx API operations. The token
// lifecycle is explicit: callers acquire a token first and pass it to
// Track, so the credential state machine stays visible in the client.
type APIClient interface {
	// GetToken performs the OAuth client-credentials exchange and returns
	// a bearer token.
	GetToken(ctx context.Context) (string, error)

	// Track posts a tracking query with the given bearer token.
	Track(ctx context.Context, token string, req *TrackRequest) (*TrackResponse, error)
}

// Account-relationship types for account-scoped enumeration. A shipment is
// returned for an account that appears in any of these roles; the slice
// order is the dedup priority (first seen wins).
var accountTypes = []string{"SHIPPER", "RECIPIENT", "PAYOR", "THIRD_PARTY"}

// Date-entry types returned in trackResult.dateAndTimes. The upstream list
// is unordered, so entries are picked by type, never by position.
const (
	dateTypeShip           = "SHIP"
	dateTypeEstimated      = "ESTIMATED_DELIVERY"
	dateTypeCommit         = "COMMIT"
	dateTypeWindowBegin    = "ESTIMATED_DELIVERY_WINDOW_BEGIN"
	dateTypeWindowEnd      = "ESTIMATED_DELIVERY_WINDOW_END"
	dateTypeActualDelivery = "ACTUAL_DELIVERY"
	dateTypePickup         = "PICKUP"
)

// ============================================================================
// API Request/Response Types (match the FedEx Track API v1 structure)
// ============================================================================

// TokenResponse is the OAuth token endpoint response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// TrackRequest is the tracking query body.
// POST /track/v1/trackingnumbers
type TrackRequest struct {
	IncludeDetailedScans bool           `json:"includeDetailedScans"`
	TrackingInfo         []TrackingInfo `json:"trackingInfo"`
}

// TrackingInfo is one query entry: either a tracking-number lookup or an
// account-scoped date-window enumeration.
type TrackingInfo struct {
	TrackingNumberInfo *TrackingNumberInfo `json:"trackingNumberInfo,omitempty"`
	ShipDateBegin      string              `json:"shipDateBegin,omitempty"` // YYYY-MM-DD
	ShipDateEnd        string              `json:"shipDateEnd,omitempty"`
	AccountNumber      *AccountNumber      `json:"accountNumber,omitempty"`
}

// TrackingNumberInfo wraps a tracking number.
type TrackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

// AccountNumber identifies the account and its relationship to a shipment.
type AccountNumber struct {
	Type  string `json:"type"` // SHIPPER | RECIPIENT | PAYOR | THIRD_PARTY
	Value string `json:"value"`
}

// TrackResponse is the tracking response envelope.
type TrackResponse struct {
	Output *TrackOutput   `json:"output,omitempty"`
	Errors []APIErrorItem `json:"errors,omitempty"`
}

// APIErrorItem is one upstream error entry.
type APIErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TrackOutput holds the per-tracking-number results.
type TrackOutput struct {
	CompleteTrackResults []CompleteTrackResult `json:"completeTrackResults"`
}

// CompleteTrackResult groups the track results for one tracking number.
type CompleteTrackResult struct {
	TrackingNumber string        `json:"trackingNumber"`
	TrackResults   []TrackResult `json:"trackResults"`
}

// TrackResult is one tracking record. Only the fields this client consumes
// are modeled; all of them are optional on the wire.
type TrackResult struct {
	LatestStatusDetail            *StatusDetail    `json:"latestStatusDetail,omitempty"`
	DateAndTimes                  []DateAndTime    `json:"dateAndTimes,omitempty"`
	EstimatedDeliveryTimeWindow   *TimeWindow      `json:"estimatedDeliveryTimeWindow,omitempty"`
	ShipperInformation            *PartyLocation   `json:"shipperInformation,omitempty"`
	RecipientInformation          *PartyLocation   `json:"recipientInformation,omitempty"`
	OriginLocation                *LocationDetail  `json:"originLocation,omitempty"`
	LastUpdatedDestinationAddress *Address         `json:"lastUpdatedDestinationAddress,omitempty"`
	DeliveryDetails               *DeliveryDetails `json:"deliveryDetails,omitempty"`
	PackageDetails                *PackageDetails  `json:"packageDetails,omitempty"`
	ServiceDetail                 *ServiceDetail   `json:"serviceDetail,omitempty"`
	ScanEvents                    []ScanEvent      `json:"scanEvents,omitempty"`
	Error                         *APIErrorItem    `json:"error,omitempty"`
}

// StatusDetail is the carrier-native latest status.
type StatusDetail struct {
	Code             string `json:"code,omitempty"`
	DerivedCode      string `json:"derivedCode,omitempty"`
	StatusByLocale   string `json:"statusByLocale,omitempty"`
	Description      string `json:"description,omitempty"`
	AncillaryDetails []struct {
		Reason            string `json:"reason,omitempty"`
		ReasonDescription string `json:"reasonDescription,omitempty"`
	} `json:"ancillaryDetails,omitempty"`
}

// DateAndTime is one typed date entry.
type DateAndTime struct {
	Type     string `json:"type"`
	DateTime string `json:"dateTime"` // RFC3339 with offset
}

// TimeWindow is an estimated delivery window.
type TimeWindow struct {
	Window *Window `json:"window,omitempty"`
}

// Window carries the window bounds.
type Window struct {
	Begins string `json:"begins,omitempty"`
	Ends   string `json:"ends,omitempty"`
}

// PartyLocation is the explicit shipper/recipient payload shape.
type PartyLocation struct {
	Contact *Contact `json:"contact,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// LocationDetail is the origin-location payload shape, used as the fallback
// when explicit shipper information is absent.
type LocationDetail struct {
	LocationContactAndAddress *PartyLocation `json:"locationContactAndAddress,omitempty"`
}

// Contact carries person/company contact details.
type Contact struct {
	PersonName  string `json:"personName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Address is a partial address.
type Address struct {
	City                string   `json:"city,omitempty"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode,omitempty"`
	PostalCode          string   `json:"postalCode,omitempty"`
	CountryCode         string   `json:"countryCode,omitempty"`
	Residential         bool     `json:"residential,omitempty"`
	StreetLines         []string `json:"streetLines,omitempty"`
}

// DeliveryDetails carries proof-of-delivery fields.
type DeliveryDetails struct {
	ReceivedByName      string `json:"receivedByName,omitempty"`
	LocationDescription string `json:"locationDescription,omitempty"`
	DeliveryAttempts    string `json:"deliveryAttempts,omitempty"`
}

// PackageDetails carries physical package fields.
type PackageDetails struct {
	Count                string                `json:"count,omitempty"`
	PackagingDescription *PackagingDescription `json:"packagingDescription,omitempty"`
	WeightAndDimensions  *WeightAndDimensions  `json:"weightAndDimensions,omitempty"`
}

// PackagingDescription carries the packaging type label.
type PackagingDescription struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// WeightAndDimensions carries weight/dimension entries.
type WeightAndDimensions struct {
	Weight     []WeightEntry    `json:"weight,omitempty"`
	Dimensions []DimensionEntry `json:"dimensions,omitempty"`
}

// WeightEntry is one weight reading.
type WeightEntry struct {
	Value string `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

// DimensionEntry is one dimension reading.
type DimensionEntry struct {
	Length int    `json:"length,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Units  string `json:"units,omitempty"`
}

// ServiceDetail carries the service used for the shipment.
type ServiceDetail struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScanEvent is one raw scan entry. Ordering on the wire is not guaranteed.
type ScanEvent struct {
	Date                 string   `json:"date,omitempty"` // RFC3339 with offset
	EventType            string   `json:"eventType,omitempty"`
	EventDescription     string   `json:"eventDescription,omitempty"`
	ExceptionDescription string   `json:"exceptionDescription,omitempty"`
	DerivedStatusCode    string   `json:"derivedStatusCode,omitempty"`
	DerivedStatus        string   `json:"derivedStatus,omitempty"`
	ScanLocation         *Address `json:"scanLocation,omitempty"`
}
