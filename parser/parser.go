// Package parser extracts the advertisement fields the discovery pipeline
// consumes from raw EIR/AD structures.
package parser

import (
	"fmt"

	"errors"

	"github.com/go-nearby/nearby"
)

var EmptyOrNilPdu = errors.New("nil/empty pdu")

// https://www.bluetooth.org/en-us/specification/assigned-numbers/generic-access-profile
var types = struct {
	flags       byte
	uuid16inc   byte
	uuid16comp  byte
	uuid32inc   byte
	uuid32comp  byte
	uuid128inc  byte
	uuid128comp byte
	svc16       byte
	svc32       byte
	svc128      byte
	nameshort   byte
	namecomp    byte
	txpwr       byte
	mfgdata     byte
}{
	flags:       0x01,
	uuid16inc:   0x02,
	uuid16comp:  0x03,
	uuid32inc:   0x04,
	uuid32comp:  0x05,
	uuid128inc:  0x06,
	uuid128comp: 0x07,
	svc16:       0x16,
	svc32:       0x20,
	svc128:      0x21,
	nameshort:   0x08,
	namecomp:    0x09,
	txpwr:       0x0a,
	mfgdata:     0xff,
}

type pduRecord struct {
	uuidSz        int
	minSz         int
	svcDataUUIDSz int
}

var pduDecodeMap = map[byte]pduRecord{
	types.uuid16inc:   {uuidSz: 2, minSz: 2},
	types.uuid16comp:  {uuidSz: 2, minSz: 2},
	types.uuid32inc:   {uuidSz: 4, minSz: 4},
	types.uuid32comp:  {uuidSz: 4, minSz: 4},
	types.uuid128inc:  {uuidSz: 16, minSz: 16},
	types.uuid128comp: {uuidSz: 16, minSz: 16},
	types.svc16:       {minSz: 2, svcDataUUIDSz: 2},
	types.svc32:       {minSz: 4, svcDataUUIDSz: 4},
	types.svc128:      {minSz: 16, svcDataUUIDSz: 16},
	types.namecomp:    {minSz: 1},
	types.nameshort:   {minSz: 1},
	types.txpwr:       {minSz: 1},
	types.mfgdata:     {minSz: 1},
	types.flags:       {minSz: 1},
}

// Fields are the decoded AD structures of one advertisement payload.
type Fields struct {
	Flags       byte
	HasFlags    bool
	LocalName   string
	TxPower     int
	HasTxPower  bool
	Services    []nearby.UUID
	ServiceData []nearby.ServiceData
	MfgData     []byte
}

// ScanResult binds the decoded fields to per-packet radio metadata in the
// form the provider consumes.
func (f *Fields) ScanResult(addr string, rssi int) nearby.ScanResult {
	res := nearby.ScanResult{
		Address: addr,
		RSSI:    rssi,
		Name:    f.LocalName,
	}
	if f.HasTxPower {
		res.TxPower = f.TxPower
	}
	if len(f.ServiceData) > 0 {
		res.ServiceData = make(map[string][]byte, len(f.ServiceData))
		for _, sd := range f.ServiceData {
			res.ServiceData[sd.UUID.String()] = sd.Data
		}
	}
	return res
}

func getUUIDs(size int, bytes []byte) ([]nearby.UUID, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size")
	}

	if len(bytes) == 0 {
		return nil, fmt.Errorf("nil/empty bytes")
	}

	count := len(bytes) / size
	rem := len(bytes) % size
	if rem != 0 || count == 0 {
		return nil, fmt.Errorf("incorrect size")
	}

	arr := make([]nearby.UUID, 0, count)
	for j := 0; j < len(bytes); j += size {
		arr = append(arr, nearby.UUID(bytes[j:(j+size)]))
	}

	return arr, nil
}

// Parse walks the AD structures of pdu. Unknown types are skipped;
// malformed lengths abort with what was decoded so far and an error.
func Parse(pdu []byte) (*Fields, error) {
	if len(pdu) == 0 {
		return nil, EmptyOrNilPdu
	}

	f := &Fields{}
	for i := 0; (i + 1) < len(pdu); {
		//length @ offset 0
		//type @ offset 1
		//data @ 1 - (length-1)
		length := int(pdu[i])
		typ := pdu[i+1]

		//length should be more than 1 since there is a type byte
		if length < 1 {
			return f, fmt.Errorf("invalid record length %v, idx %v", length, i)
		}

		//do we have all the bytes for the payload?
		if (i + length) >= len(pdu) {
			return f, fmt.Errorf("buffer overflow: want %v, have %v, idx %v", i+length, len(pdu), i)
		}

		start := i + 2
		end := start + length - 1
		bytes := make([]byte, end-start)
		copy(bytes, pdu[start:end])

		dec, ok := pduDecodeMap[typ]
		if ok && len(bytes) != 0 {
			if dec.minSz > len(bytes) {
				return f, fmt.Errorf("adv type %v: min length %v, have %v, idx %v", typ, dec.minSz, len(bytes), i)
			}

			if err := f.set(typ, dec, bytes); err != nil {
				return f, fmt.Errorf("adv type %v, idx %v: %w", typ, i, err)
			}
		}

		i += length + 1
	}

	return f, nil
}

func (f *Fields) set(typ byte, dec pduRecord, bytes []byte) error {
	switch {
	case dec.uuidSz > 0:
		arr, err := getUUIDs(dec.uuidSz, bytes)
		if err != nil {
			return err
		}
		f.Services = append(f.Services, arr...)

	case dec.svcDataUUIDSz > 0:
		f.ServiceData = append(f.ServiceData, nearby.ServiceData{
			UUID: nearby.UUID(bytes[:dec.svcDataUUIDSz]),
			Data: bytes[dec.svcDataUUIDSz:],
		})

	case typ == types.flags:
		f.Flags = bytes[0]
		f.HasFlags = true

	case typ == types.txpwr:
		f.TxPower = int(int8(bytes[0]))
		f.HasTxPower = true

	case typ == types.namecomp, typ == types.nameshort:
		// a complete name wins over a shortened one
		if typ == types.namecomp || f.LocalName == "" {
			f.LocalName = string(bytes)
		}

	case typ == types.mfgdata:
		if len(f.MfgData) > 0 {
			//mfg data contains the company id again in the scan response
			//strip that out
			bytes = bytes[2:]
		}
		f.MfgData = append(f.MfgData, bytes...)
	}

	return nil
}
