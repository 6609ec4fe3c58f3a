package nearby

import "testing"

func TestHashDeviceIDStable(t *testing.T) {
	a := HashDeviceID([]byte("aa:bb:cc:dd:ee:ff"))
	b := HashDeviceID([]byte("aa:bb:cc:dd:ee:ff"))
	if a != b {
		t.Fatal("hash not deterministic")
	}
	if a == HashDeviceID([]byte("aa:bb:cc:dd:ee:00")) {
		t.Fatal("distinct addresses collided")
	}
}

func TestGetServiceData(t *testing.T) {
	res := ScanResult{
		ServiceData: map[string][]byte{
			PresenceUUID.String(): {0x01},
		},
	}
	if res.GetServiceData(PresenceUUID) == nil {
		t.Fatal("presence payload not found")
	}
	if res.GetServiceData(FastPairUUID) != nil {
		t.Fatal("missing key returned data")
	}

	var empty ScanResult
	if empty.GetServiceData(PresenceUUID) != nil {
		t.Fatal("nil map returned data")
	}
}

func TestCopyFilters(t *testing.T) {
	if CopyFilters(nil) != nil {
		t.Fatal("nil set must stay nil")
	}

	in := []ScanFilter{PresenceFilter{}}
	out := CopyFilters(in)
	out[0] = FixedIDFilter{}
	if _, ok := in[0].(PresenceFilter); !ok {
		t.Fatal("copy aliases the input")
	}
}
