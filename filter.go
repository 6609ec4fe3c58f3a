package nearby

// FilterType discriminates the ScanFilter variants.
type FilterType int

const (
	// FilterTypeFixedID matches packets carrying service data under a
	// static, well-known service UUID.
	FilterTypeFixedID FilterType = iota
	// FilterTypePresence matches packets whose service data decrypts
	// under one of the filter's credentials.
	FilterTypePresence
)

// ScanFilter selects which received packets a discovery provider resolves.
// Filter sets are installed wholesale and are immutable once installed.
type ScanFilter interface {
	FilterType() FilterType
}

// FixedIDFilter matches on a static service-data UUID. The payload is
// passed through to the device record without decoding.
type FixedIDFilter struct {
	ServiceUUID UUID
}

func (f FixedIDFilter) FilterType() FilterType {
	return FilterTypeFixedID
}

// PresenceFilter matches packets whose service data decrypts successfully
// under any of its credentials. Credential order is caller-determined and
// preserved; resolution tries them in order.
type PresenceFilter struct {
	Credentials []PublicCredential
}

func (f PresenceFilter) FilterType() FilterType {
	return FilterTypePresence
}

// CopyFilters returns a defensive copy of a filter set. A nil set stays
// nil; nil means the filters were never installed, which is distinct from
// an installed empty set.
func CopyFilters(ff []ScanFilter) []ScanFilter {
	if ff == nil {
		return nil
	}
	out := make([]ScanFilter, len(ff))
	copy(out, ff)
	return out
}
