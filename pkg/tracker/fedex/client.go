// Package fedex provides the international carrier client for the FedEx
// Track API: OAuth client-credentials auth, single and batch lookups, and
// account-scoped shipment enumeration across the four account-relationship
// types.
package fedex

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	errMsgMissingCreds   = "FedEx API 인증 정보가 설정되지 않았습니다."
	errMsgMissingAccount = "FedEx 계정 번호가 설정되지 않았습니다."
	errMsgTokenFailed    = "FedEx 인증에 실패했습니다."
	errMsgLookup         = "조회 중 오류가 발생했습니다."
	errMsgNotFound       = "송장 정보를 찾을 수 없습니다."
)

// Config holds FedEx configuration.
type Config struct {
	ClientID      string
	ClientSecret  string
	AccountNumber string
	BaseURL       string
	UseMock       bool // When true, uses the mock API client
}

// Client is the FedEx tracker. It implements tracker.Tracker plus the
// BatchTracker and AccountLister extensions.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new FedEx client.
// If cfg.UseMock is true, it uses a mock API client for testing.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:      cfg.BaseURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Timeout:      10 * time.Second,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new FedEx client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Carrier returns the registry code of this tracker.
func (c *Client) Carrier() tracker.Carrier {
	return tracker.CarrierFedEx
}

func (c *Client) credentialsConfigured() bool {
	return c.config.ClientID != "" && c.config.ClientSecret != ""
}

// Track looks up a single tracking number with detailed scans.
func (c *Client) Track(ctx context.Context, trackingNumber string) *tracker.TrackingResult {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "fedex.Track")
		defer span.End()
	}

	if !c.credentialsConfigured() {
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, errMsgMissingCreds)
	}

	token, err := c.apiClient.GetToken(ctx)
	if err != nil {
		c.logger.Error("FedEx token exchange failed", zap.Error(err))
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, errMsgTokenFailed)
	}

	req := &TrackRequest{
		IncludeDetailedScans: true,
		TrackingInfo: []TrackingInfo{
			{TrackingNumberInfo: &TrackingNumberInfo{TrackingNumber: trackingNumber}},
		},
	}

	resp, err := c.apiClient.Track(ctx, token, req)
	if err != nil {
		c.logger.Error("FedEx track request failed",
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, errMsgLookup)
	}

	if len(resp.Errors) > 0 {
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, resp.Errors[0].Message)
	}

	tr := firstTrackResult(resp)
	if tr == nil {
		// The request succeeded but the carrier has nothing to report;
		// distinct from an upstream error.
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, errMsgNotFound)
	}
	if tr.Error != nil && tr.Error.Message != "" {
		return tracker.FailedResult(tracker.CarrierFedEx, trackingNumber, tr.Error.Message)
	}

	return c.toResult(trackingNumber, tr)
}

// TrackBatch looks up summary records for many tracking numbers in one
// request. Per-shipment upstream errors are skipped; whatever parsed is
// returned.
func (c *Client) TrackBatch(ctx context.Context, trackingNumbers []string) *tracker.ShipmentList {
	if len(trackingNumbers) == 0 {
		return &tracker.ShipmentList{Success: true, Shipments: []tracker.ShipmentSummary{}}
	}

	if !c.credentialsConfigured() {
		return tracker.FailedList(errMsgMissingCreds)
	}

	token, err := c.apiClient.GetToken(ctx)
	if err != nil {
		c.logger.Error("FedEx token exchange failed", zap.Error(err))
		return tracker.FailedList(errMsgTokenFailed)
	}

	infos := make([]TrackingInfo, 0, len(trackingNumbers))
	for _, n := range trackingNumbers {
		infos = append(infos, TrackingInfo{
			TrackingNumberInfo: &TrackingNumberInfo{TrackingNumber: n},
		})
	}
	req := &TrackRequest{IncludeDetailedScans: false, TrackingInfo: infos}

	resp, err := c.apiClient.Track(ctx, token, req)
	if err != nil {
		c.logger.Error("FedEx batch request failed",
			zap.Int("count", len(trackingNumbers)),
			zap.Error(err),
		)
		return tracker.FailedList(errMsgLookup)
	}

	for _, e := range resp.Errors {
		c.logger.Warn("FedEx batch reported an error",
			zap.String("code", e.Code),
			zap.String("message", e.Message),
		)
	}

	return &tracker.ShipmentList{
		Success:   true,
		Shipments: c.toSummaries(resp),
	}
}

// ListByAccount enumerates shipments for the configured account over the
// trailing daysBack days. The four account-relationship queries run
// concurrently, but the merge order is the fixed relationship priority, so
// first-seen-wins deduplication stays deterministic.
func (c *Client) ListByAccount(ctx context.Context, daysBack int) *tracker.ShipmentList {
	if !c.credentialsConfigured() {
		return tracker.FailedList(errMsgMissingCreds)
	}
	if c.config.AccountNumber == "" {
		return tracker.FailedList(errMsgMissingAccount)
	}

	token, err := c.apiClient.GetToken(ctx)
	if err != nil {
		c.logger.Error("FedEx token exchange failed", zap.Error(err))
		return tracker.FailedList(errMsgTokenFailed)
	}

	if daysBack <= 0 {
		daysBack = 30
	}
	now := time.Now()
	begin := now.AddDate(0, 0, -daysBack).Format("2006-01-02")
	end := now.Format("2006-01-02")

	// One response slot per account type, indexed to keep the merge order
	// independent of completion order.
	responses := make([]*TrackResponse, len(accountTypes))
	g, gctx := errgroup.WithContext(ctx)

	for i, accountType := range accountTypes {
		i, accountType := i, accountType
		g.Go(func() error {
			req := &TrackRequest{
				IncludeDetailedScans: false,
				TrackingInfo: []TrackingInfo{
					{
						ShipDateBegin: begin,
						ShipDateEnd:   end,
						AccountNumber: &AccountNumber{Type: accountType, Value: c.config.AccountNumber},
					},
				},
			}
			resp, err := c.apiClient.Track(gctx, token, req)
			if err != nil {
				// One failed relationship query must not abort the
				// other three.
				c.logger.Warn("FedEx account query failed",
					zap.String("account_type", accountType),
					zap.Error(err),
				)
				return nil
			}
			for _, e := range resp.Errors {
				c.logger.Warn("FedEx account query reported an error",
					zap.String("account_type", accountType),
					zap.String("code", e.Code),
					zap.String("message", e.Message),
				)
			}
			responses[i] = resp
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	merged := make([]tracker.ShipmentSummary, 0)
	for _, resp := range responses {
		if resp == nil {
			continue
		}
		for _, s := range c.toSummaries(resp) {
			if _, ok := seen[s.TrackingNumber]; ok {
				continue
			}
			seen[s.TrackingNumber] = struct{}{}
			merged = append(merged, s)
		}
	}

	return &tracker.ShipmentList{Success: true, Shipments: merged}
}

// ============================================================================
// Conversion helpers: API models -> tracker models
// ============================================================================

func firstTrackResult(resp *TrackResponse) *TrackResult {
	if resp.Output == nil || len(resp.Output.CompleteTrackResults) == 0 {
		return nil
	}
	ctr := resp.Output.CompleteTrackResults[0]
	if len(ctr.TrackResults) == 0 {
		return nil
	}
	return &ctr.TrackResults[0]
}

func (c *Client) toResult(trackingNumber string, tr *TrackResult) *tracker.TrackingResult {
	result := &tracker.TrackingResult{
		TrackingNumber: trackingNumber,
		Carrier:        tracker.CarrierFedEx,
		Status:         tracker.StatusInTransit,
		Timeline:       buildTimeline(tr.ScanEvents),
		Success:        true,
	}

	if tr.LatestStatusDetail != nil {
		result.Status = mapStatusCode(tr.LatestStatusDetail.DerivedCode)
	}

	dates := datesByType(tr.DateAndTimes)
	result.DateInfo = buildDateInfo(dates, tr.EstimatedDeliveryTimeWindow)
	if result.DateInfo != nil {
		result.ETA = result.DateInfo.EstimatedDelivery
	}

	// The shipper/recipient payload shape depends on the query type, so
	// each side is an explicit fallback chain.
	result.Shipper = partyWithFallback(tr.ShipperInformation, tr.OriginLocation)
	result.Recipient = recipientWithFallback(tr.RecipientInformation, tr.LastUpdatedDestinationAddress)
	if result.Shipper != nil && result.Shipper.Address != nil {
		result.Origin = formatAddress(result.Shipper.Address)
	}
	if result.Recipient != nil && result.Recipient.Address != nil {
		result.Destination = formatAddress(result.Recipient.Address)
	}

	if tr.DeliveryDetails != nil {
		result.SignedBy = tr.DeliveryDetails.ReceivedByName
		result.DeliveryLocation = tr.DeliveryDetails.LocationDescription
	}

	result.PackageInfo = buildPackageInfo(tr.PackageDetails)
	if tr.ServiceDetail != nil {
		result.ServiceInfo = &tracker.ServiceInfo{
			Type:        tr.ServiceDetail.Type,
			Description: tr.ServiceDetail.Description,
		}
	}

	return result
}

func (c *Client) toSummaries(resp *TrackResponse) []tracker.ShipmentSummary {
	if resp.Output == nil {
		return []tracker.ShipmentSummary{}
	}

	out := make([]tracker.ShipmentSummary, 0, len(resp.Output.CompleteTrackResults))
	for _, ctr := range resp.Output.CompleteTrackResults {
		if len(ctr.TrackResults) == 0 {
			continue
		}
		tr := ctr.TrackResults[0]
		if tr.Error != nil && tr.Error.Message != "" {
			c.logger.Warn("FedEx shipment skipped",
				zap.String("tracking_number", ctr.TrackingNumber),
				zap.String("message", tr.Error.Message),
			)
			continue
		}
		out = append(out, summaryFrom(ctr.TrackingNumber, &tr))
	}
	return out
}

func summaryFrom(trackingNumber string, tr *TrackResult) tracker.ShipmentSummary {
	s := tracker.ShipmentSummary{
		TrackingNumber: trackingNumber,
		Status:         tracker.StatusInTransit,
	}

	if tr.LatestStatusDetail != nil {
		s.StatusCode = tr.LatestStatusDetail.DerivedCode
		s.StatusDescription = tr.LatestStatusDetail.Description
		s.Status = mapStatusCode(tr.LatestStatusDetail.DerivedCode)
	}

	dates := datesByType(tr.DateAndTimes)
	s.ShipDate = dateOnly(dates[dateTypeShip])
	s.EstimatedDelivery = dateOnly(dates[dateTypeEstimated])
	s.ActualDelivery = dateOnly(dates[dateTypeActualDelivery])

	if tr.OriginLocation != nil && tr.OriginLocation.LocationContactAndAddress != nil {
		if a := tr.OriginLocation.LocationContactAndAddress.Address; a != nil {
			s.OriginCity = a.City
			s.OriginCountry = a.CountryCode
		}
	}
	if a := tr.LastUpdatedDestinationAddress; a != nil {
		s.DestinationCity = a.City
		s.DestinationCountry = a.CountryCode
	}

	if tr.ServiceDetail != nil {
		s.ServiceDescription = tr.ServiceDetail.Description
	}
	if w := firstWeight(tr.PackageDetails); w != "" {
		s.Weight = w
	}

	return s
}

// buildTimeline turns raw scan events into the normalized timeline, sorted
// strictly most-recent-first. Upstream event order is not guaranteed, so
// each event gets a parsed sort key which is discarded after sorting.
func buildTimeline(events []ScanEvent) []tracker.TrackingEvent {
	type keyed struct {
		at time.Time
		ev tracker.TrackingEvent
	}

	keyedEvents := make([]keyed, 0, len(events))
	for _, e := range events {
		at, date, hhmm := parseEventTime(e.Date)

		desc := e.EventDescription
		if e.ExceptionDescription != "" {
			desc = fmt.Sprintf("%s (%s)", desc, e.ExceptionDescription)
		}

		keyedEvents = append(keyedEvents, keyed{
			at: at,
			ev: tracker.TrackingEvent{
				Date:        date,
				Time:        hhmm,
				Status:      mapStatusCode(e.DerivedStatusCode),
				Location:    formatAddress(addressInfo(e.ScanLocation)),
				Description: desc,
			},
		})
	}

	sort.SliceStable(keyedEvents, func(i, j int) bool {
		return keyedEvents[i].at.After(keyedEvents[j].at)
	})

	timeline := make([]tracker.TrackingEvent, 0, len(keyedEvents))
	for _, k := range keyedEvents {
		timeline = append(timeline, k.ev)
	}
	return timeline
}

// datesByType indexes the unordered dateAndTimes list by entry type.
func datesByType(entries []DateAndTime) map[string]string {
	out := make(map[string]string, len(entries))
	for _, d := range entries {
		if _, ok := out[d.Type]; !ok {
			out[d.Type] = d.DateTime
		}
	}
	return out
}

func buildDateInfo(dates map[string]string, window *TimeWindow) *tracker.DateInfo {
	info := &tracker.DateInfo{
		ShipDate:          dateOnly(dates[dateTypeShip]),
		EstimatedDelivery: dateOnly(dates[dateTypeEstimated]),
		ActualDelivery:    dateOnly(dates[dateTypeActualDelivery]),
		PickupDate:        dateOnly(dates[dateTypePickup]),
		DeliveryWindow:    deliveryWindow(dates, window),
	}
	if *info == (tracker.DateInfo{}) {
		return nil
	}
	return info
}

// deliveryWindow derives the human-readable delivery window. An explicit
// window wins; otherwise the COMMIT time becomes a "before HH:MM" bound;
// otherwise there is no window.
func deliveryWindow(dates map[string]string, window *TimeWindow) string {
	begin := dates[dateTypeWindowBegin]
	end := dates[dateTypeWindowEnd]
	if window != nil && window.Window != nil {
		if window.Window.Begins != "" {
			begin = window.Window.Begins
		}
		if window.Window.Ends != "" {
			end = window.Window.Ends
		}
	}

	if b, e := timeOnly(begin), timeOnly(end); b != "" && e != "" {
		return fmt.Sprintf("%s ~ %s", b, e)
	}
	if commit := timeOnly(dates[dateTypeCommit]); commit != "" {
		return fmt.Sprintf("%s 이전", commit)
	}
	return ""
}

func partyWithFallback(explicit *PartyLocation, origin *LocationDetail) *tracker.PartyInfo {
	if p := partyInfo(explicit); p != nil {
		return p
	}
	if origin != nil {
		return partyInfo(origin.LocationContactAndAddress)
	}
	return nil
}

func recipientWithFallback(explicit *PartyLocation, destination *Address) *tracker.PartyInfo {
	if p := partyInfo(explicit); p != nil {
		return p
	}
	if a := addressInfo(destination); a != nil {
		return &tracker.PartyInfo{Address: a}
	}
	return nil
}

func partyInfo(p *PartyLocation) *tracker.PartyInfo {
	if p == nil {
		return nil
	}
	out := &tracker.PartyInfo{
		Address: addressInfo(p.Address),
	}
	if c := p.Contact; c != nil {
		out.Contact = &tracker.ContactInfo{
			PersonName:  c.PersonName,
			CompanyName: c.CompanyName,
			PhoneNumber: c.PhoneNumber,
		}
	}
	if out.Contact == nil && out.Address == nil {
		return nil
	}
	return out
}

func addressInfo(a *Address) *tracker.AddressInfo {
	if a == nil {
		return nil
	}
	return &tracker.AddressInfo{
		City:            a.City,
		StateOrProvince: a.StateOrProvinceCode,
		PostalCode:      a.PostalCode,
		CountryCode:     a.CountryCode,
	}
}

// formatAddress renders an address as "City, State, Country", skipping
// empty parts.
func formatAddress(a *tracker.AddressInfo) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.StateOrProvince, a.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func buildPackageInfo(pd *PackageDetails) *tracker.PackageInfo {
	if pd == nil {
		return nil
	}
	info := &tracker.PackageInfo{}
	if n := parseCount(pd.Count); n > 0 {
		info.Count = n
	}
	if pd.PackagingDescription != nil {
		info.Packaging = pd.PackagingDescription.Description
	}
	if wd := pd.WeightAndDimensions; wd != nil {
		if len(wd.Weight) > 0 {
			info.Weight = fmt.Sprintf("%s %s", wd.Weight[0].Value, wd.Weight[0].Unit)
		}
		if len(wd.Dimensions) > 0 {
			d := wd.Dimensions[0]
			info.Dimensions = fmt.Sprintf("%dx%dx%d %s", d.Length, d.Width, d.Height, d.Units)
		}
	}
	if *info == (tracker.PackageInfo{}) {
		return nil
	}
	return info
}

func firstWeight(pd *PackageDetails) string {
	if pd == nil || pd.WeightAndDimensions == nil || len(pd.WeightAndDimensions.Weight) == 0 {
		return ""
	}
	w := pd.WeightAndDimensions.Weight[0]
	return fmt.Sprintf("%s %s", w.Value, w.Unit)
}

// mapStatusCode maps the carrier's two-letter derived status code to the
// normalized status. Unrecognized codes default to in_transit: the carrier
// is known-functioning and its code set evolves, so an unknown code means
// "still moving", not "broken".
func mapStatusCode(code string) tracker.Status {
	switch code {
	case "OC":
		return tracker.StatusPending
	case "PU":
		return tracker.StatusPickedUp
	case "IT", "DP", "AR", "DY":
		return tracker.StatusInTransit
	case "OD":
		return tracker.StatusOutForDelivery
	case "DL":
		return tracker.StatusDelivered
	case "CA":
		return tracker.StatusUnknown
	default:
		return tracker.StatusInTransit
	}
}

// parseEventTime parses a scan event timestamp, keeping the carrier-local
// wall time for display. Returns the sort key plus the date and HH:MM parts.
func parseEventTime(raw string) (time.Time, string, string) {
	if raw == "" {
		return time.Time{}, "", ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, t.Format("2006-01-02"), t.Format("15:04")
		}
	}
	// Unparseable timestamps keep their date text and sort last.
	date := raw
	if len(date) > 10 {
		date = date[:10]
	}
	return time.Time{}, date, ""
}

func dateOnly(raw string) string {
	if raw == "" {
		return ""
	}
	_, date, _ := parseEventTime(raw)
	return date
}

func timeOnly(raw string) string {
	if raw == "" {
		return ""
	}
	_, _, hhmm := parseEventTime(raw)
	return hhmm
}

func parseCount(s string) int {
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// Compile-time interface checks
var (
	_ tracker.Tracker       = (*Client)(nil)
	_ tracker.BatchTracker  = (*Client)(nil)
	_ tracker.AccountLister = (*Client)(nil)
)
