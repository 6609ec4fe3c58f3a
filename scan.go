package nearby

import "errors"

// Service UUIDs the provider recognizes in received service data.
var (
	// FastPairUUID keys the fixed-payload beacon service data.
	FastPairUUID = UUID16(0xfe2c)
	// PresenceUUID keys the encrypted presence service data.
	PresenceUUID = UUID16(0xfcf1)
)

// ErrScanFailed is the single generic error surfaced to a Listener when
// the radio stack reports an asynchronous scan failure.
var ErrScanFailed = errors.New("scan failed")

// ScanMode selects the radio duty cycle. It is opaque to the resolution
// core and passed through to the scanner unchanged.
type ScanMode int

const (
	ScanModeLowPower ScanMode = iota
	ScanModeBalanced
	ScanModeLowLatency
	ScanModeOpportunistic
)

func (m ScanMode) String() string {
	switch m {
	case ScanModeLowPower:
		return "low-power"
	case ScanModeBalanced:
		return "balanced"
	case ScanModeLowLatency:
		return "low-latency"
	case ScanModeOpportunistic:
		return "opportunistic"
	default:
		return "unknown"
	}
}

// ServiceData is one service-data AD structure from a received packet.
type ServiceData struct {
	UUID UUID
	Data []byte
}

// ScanResult is the per-packet input consumed from the radio collaborator.
type ScanResult struct {
	Address string
	RSSI    int
	TxPower int
	Name    string
	// ServiceData maps service UUIDs (UUID.String form) to raw payloads.
	ServiceData map[string][]byte
}

// GetServiceData returns the payload keyed by u, or nil.
func (r ScanResult) GetServiceData(u UUID) []byte {
	if r.ServiceData == nil {
		return nil
	}
	return r.ServiceData[u.String()]
}

// Listener receives resolved device events from a discovery provider.
type Listener interface {
	OnDeviceDiscovered(*DeviceRecord)
	OnError(error)
}
