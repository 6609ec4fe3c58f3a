package parser

import (
	"bytes"
	"testing"

	"github.com/go-nearby/nearby"
)

type testPdu struct {
	b []byte
}

func (t *testPdu) addBad(recTyp byte, badRecLen byte, recBytes []byte) {
	t.b = append(t.b, badRecLen, recTyp)
	t.b = append(t.b, recBytes...)
}

func (t *testPdu) add(recTyp byte, recBytes []byte) {
	lb := byte(len(recBytes) + 1)
	t.b = append(t.b, lb, recTyp)
	t.b = append(t.b, recBytes...)
}

func (t *testPdu) bytes() []byte {
	return t.b
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil); err != EmptyOrNilPdu {
		t.Fatalf("want EmptyOrNilPdu, got %v", err)
	}
	if _, err := Parse([]byte{}); err != EmptyOrNilPdu {
		t.Fatalf("want EmptyOrNilPdu, got %v", err)
	}
}

func TestParseName(t *testing.T) {
	p := testPdu{}
	p.add(types.nameshort, []byte("bea"))

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if f.LocalName != "bea" {
		t.Fatalf("name: got %q", f.LocalName)
	}

	// a complete name replaces a shortened one
	p.add(types.namecomp, []byte("beacon"))
	f, err = Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if f.LocalName != "beacon" {
		t.Fatalf("name: got %q", f.LocalName)
	}
}

func TestParseTxPower(t *testing.T) {
	p := testPdu{}
	p.add(types.txpwr, []byte{0xf4}) //-12 dBm

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if !f.HasTxPower || f.TxPower != -12 {
		t.Fatalf("tx power: got %v (present %v)", f.TxPower, f.HasTxPower)
	}
}

func TestParseServices(t *testing.T) {
	p := testPdu{}
	p.add(types.uuid16comp, []byte{0x2c, 0xfe, 0xf1, 0xfc})

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if len(f.Services) != 2 {
		t.Fatalf("want 2 services, got %d", len(f.Services))
	}
	if !f.Services[0].Equal(nearby.FastPairUUID) || !f.Services[1].Equal(nearby.PresenceUUID) {
		t.Fatalf("services: got %v", f.Services)
	}
}

func TestParseServicesBadLength(t *testing.T) {
	p := testPdu{}
	p.add(types.uuid16comp, []byte{0x2c, 0xfe, 0xf1}) //3 bytes, not a multiple of 2

	if _, err := Parse(p.bytes()); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestParseServiceData(t *testing.T) {
	payload := []byte{0x20, 0x01, 0x02, 0x03}
	p := testPdu{}
	p.add(types.svc16, append([]byte{0xf1, 0xfc}, payload...))

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if len(f.ServiceData) != 1 {
		t.Fatalf("want 1 service data record, got %d", len(f.ServiceData))
	}
	sd := f.ServiceData[0]
	if !sd.UUID.Equal(nearby.PresenceUUID) {
		t.Fatalf("service data uuid: got %s", sd.UUID)
	}
	if !bytes.Equal(sd.Data, payload) {
		t.Fatalf("service data payload: got %x", sd.Data)
	}
}

func TestParseBadRecordLength(t *testing.T) {
	p := testPdu{}
	p.addBad(types.txpwr, 0x09, []byte{0x04}) //claims 9, has 1

	if _, err := Parse(p.bytes()); err == nil {
		t.Fatal("expected a buffer overflow error")
	}
}

func TestParseSkipsUnknownTypes(t *testing.T) {
	p := testPdu{}
	p.add(0x3d, []byte{0xde, 0xad}) //unassigned type
	p.add(types.txpwr, []byte{0x04})

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if !f.HasTxPower || f.TxPower != 4 {
		t.Fatal("known record after an unknown type was lost")
	}
}

func TestScanResultConversion(t *testing.T) {
	payload := []byte{0xaa, 0xbb}
	p := testPdu{}
	p.add(types.namecomp, []byte("beacon"))
	p.add(types.txpwr, []byte{0x07})
	p.add(types.svc16, append([]byte{0x2c, 0xfe}, payload...))

	f, err := Parse(p.bytes())
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}

	res := f.ScanResult("aa:bb:cc:dd:ee:ff", -40)
	if res.Address != "aa:bb:cc:dd:ee:ff" || res.RSSI != -40 {
		t.Fatalf("metadata not bound: %+v", res)
	}
	if res.Name != "beacon" || res.TxPower != 7 {
		t.Fatalf("fields not bound: %+v", res)
	}
	if !bytes.Equal(res.GetServiceData(nearby.FastPairUUID), payload) {
		t.Fatalf("service data not keyed by uuid: %+v", res.ServiceData)
	}
}
