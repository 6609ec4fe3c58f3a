package provider

import "github.com/go-nearby/nearby"

// Settings configure one scan session on the radio.
type Settings struct {
	Mode   nearby.ScanMode
	Legacy bool
	// ServiceUUIDs is the hardware service-data filter list installed on
	// the radio; packets without any of these keys are not delivered.
	ServiceUUIDs []nearby.UUID
}

// Handler receives raw results from an active scan session. The radio
// stack may invoke it from its own threads.
type Handler interface {
	HandleScanResult(nearby.ScanResult)
	HandleScanFailure(error)
}

// Scanner abstracts the platform scanning API. Implementations own scan
// session management; the provider only starts and stops sessions and
// consumes results.
type Scanner interface {
	// Available reports whether a radio adapter and scanner are present.
	Available() bool
	StartScan(Settings, Handler) error
	StopScan(Handler) error
}

// Controller is the owner of the provider's lifecycle. The provider calls
// Stop when it cannot run (fail-fast on an unavailable radio) and reads
// the scan mode on the way up.
type Controller interface {
	Stop()
	ScanMode() nearby.ScanMode
}
