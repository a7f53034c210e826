package tracker

import (
	"fmt"
	"sync"
)

// Carrier identifies a shipping carrier. The set is closed: adding a carrier
// requires new request/response mapping code, so registry entries are
// compiled in rather than loaded at runtime.
type Carrier string

const (
	// Domestic carriers, reached through the Smart Parcel aggregator.
	CarrierCJ    Carrier = "cj"
	CarrierLogen Carrier = "logen"

	// International carriers.
	CarrierFedEx Carrier = "fedex"
	CarrierUPS   Carrier = "ups"
)

// CarrierInfo is the static registry entry for a carrier.
type CarrierInfo struct {
	Code           Carrier `json:"code"`
	Name           string  `json:"name"`
	AggregatorCode string  `json:"aggregatorCode,omitempty"` // Smart Parcel two-digit code, domestic only
	International  bool    `json:"international"`
}

// Valid reports whether the entry belongs to a known carrier.
func (i CarrierInfo) Valid() bool {
	return i.Code != ""
}

// Info returns the registry entry for the carrier. Exhaustive over the
// closed carrier set; unknown codes yield a zero entry.
func (c Carrier) Info() CarrierInfo {
	switch c {
	case CarrierCJ:
		return CarrierInfo{Code: CarrierCJ, Name: "CJ대한통운", AggregatorCode: "04"}
	case CarrierLogen:
		return CarrierInfo{Code: CarrierLogen, Name: "로젠택배", AggregatorCode: "06"}
	case CarrierFedEx:
		return CarrierInfo{Code: CarrierFedEx, Name: "FedEx", International: true}
	case CarrierUPS:
		return CarrierInfo{Code: CarrierUPS, Name: "UPS", International: true}
	default:
		return CarrierInfo{}
	}
}

// Carriers returns every registry entry, domestic first.
func Carriers() []CarrierInfo {
	return []CarrierInfo{
		CarrierCJ.Info(),
		CarrierLogen.Info(),
		CarrierFedEx.Info(),
		CarrierUPS.Info(),
	}
}

// DomesticCarriers returns the registry entries served by the aggregator.
func DomesticCarriers() []CarrierInfo {
	return filterCarriers(false)
}

// InternationalCarriers returns the international registry entries.
func InternationalCarriers() []CarrierInfo {
	return filterCarriers(true)
}

func filterCarriers(international bool) []CarrierInfo {
	var out []CarrierInfo
	for _, info := range Carriers() {
		if info.International == international {
			out = append(out, info)
		}
	}
	return out
}

// Registry maps carrier codes to their Tracker implementations.
type Registry struct {
	trackers map[Carrier]Tracker
	mu       sync.RWMutex
}

// NewRegistry creates an empty tracker registry.
func NewRegistry() *Registry {
	return &Registry{
		trackers: make(map[Carrier]Tracker),
	}
}

// Register adds a tracker to the registry, replacing any previous tracker
// for the same carrier.
func (r *Registry) Register(t Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trackers[t.Carrier()] = t
}

// Get returns the tracker for a carrier code.
func (r *Registry) Get(c Carrier) (Tracker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.trackers[c]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, c)
}

// Names returns the carrier codes of all registered trackers.
func (r *Registry) Names() []Carrier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]Carrier, 0, len(r.trackers))
	for c := range r.trackers {
		names = append(names, c)
	}
	return names
}

// Count returns the number of registered trackers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trackers)
}
