package nearby

import "hash/fnv"

// Medium is the transport over which a device was discovered.
type Medium int

const (
	MediumUnknown Medium = iota
	MediumBLE
)

func (m Medium) String() string {
	switch m {
	case MediumBLE:
		return "ble"
	default:
		return "unknown"
	}
}

// DataElement is one typed key-value extended property decoded from a
// presence advertisement.
type DataElement struct {
	Key   int
	Value []byte
}

// PresenceDevice is the decoded presence sub-record attached to a device
// record when a credential matched.
type PresenceDevice struct {
	DeviceID           string
	Salt               []byte
	SecretID           []byte
	Identity           []byte
	Medium             Medium
	Name               string
	RSSI               int
	ExtendedProperties []DataElement
}

// DeviceRecord is the resolved per-packet output of a discovery provider.
// It is a one-shot event payload; the provider does not retain it.
type DeviceRecord struct {
	DeviceID         int32
	Medium           Medium
	RSSI             int
	TxPower          int
	Name             string
	Address          string
	Data             []byte
	EncryptionKeyTag []byte
	PresenceDevice   *PresenceDevice
}

// HashDeviceID derives a stable integer device identifier from an opaque
// byte identity (a physical address string, or a credential secret ID).
func HashDeviceID(b []byte) int32 {
	h := fnv.New32a()
	h.Write(b)
	return int32(h.Sum32())
}
