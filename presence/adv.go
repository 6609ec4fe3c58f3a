// Package presence implements the encrypted extended-advertisement codec
// used by presence beacons.
//
// Wire layout of a presence service-data payload:
//
//	header   1 byte   version in the high 3 bits
//	salt     2 bytes  cleartext, per-broadcast
//	body     n bytes  AES-128-CTR ciphertext: identity (16 bytes)
//	                  followed by data elements in TLV form
//	tag      8 bytes  truncated AES-CMAC over header|salt|body, keyed by
//	                  the credential authenticity key
//
// A data element is a single header byte, value length in the high
// nibble and key in the low nibble, followed by the value bytes.
package presence

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/go-nearby/nearby"
)

// Version is the only advertisement version this codec understands.
const Version = 1

const (
	headerLen   = 1
	saltLen     = 2
	identityLen = 16
	tagLen      = 8

	minAdvLen = headerLen + saltLen + identityLen + tagLen

	// data element TLV bounds, both packed into one header byte
	maxElementLen = 15
	maxElementKey = 15
)

// Well-known data element keys.
const (
	DataTypeAction           = 1
	DataTypeTxPower          = 2
	DataTypeModelID          = 3
	DataTypeBattery          = 4
	DataTypeConnectionStatus = 5
)

var (
	errTooShort       = errors.New("advertisement too short")
	errVersion        = errors.New("unsupported advertisement version")
	errAuthTag        = errors.New("authenticity tag mismatch")
	errElementBounds  = errors.New("data element exceeds body")
	errElementEncode  = errors.New("data element does not fit TLV form")
	errKeyLen         = errors.New("authenticity key must be 16 bytes")
	errIdentityEncode = errors.New("identity must be 16 bytes")
)

// Advertisement is a decoded presence payload. It is produced only by a
// successful trial decryption; raw over-the-air bytes never become an
// Advertisement without passing through FromBytes.
type Advertisement struct {
	Version      int
	Salt         []byte
	Identity     []byte
	DataElements []nearby.DataElement
}

// FromBytes attempts to decode data with the given credential. A non-nil
// error means only that the credential does not apply to these bytes; the
// distinct causes are not meaningful to callers and are not surfaced
// individually by resolution.
func FromBytes(data []byte, c nearby.PublicCredential) (*Advertisement, error) {
	if len(data) < minAdvLen {
		return nil, errTooShort
	}

	version := int(data[0] >> 5)
	if version != Version {
		return nil, errors.Wrap(errVersion, fmt.Sprintf("version %d", version))
	}

	body := data[headerLen+saltLen : len(data)-tagLen]
	tag := data[len(data)-tagLen:]

	if !verifyTag(c.AuthenticityKey, data[:len(data)-tagLen], tag) {
		return nil, errAuthTag
	}

	salt := make([]byte, saltLen)
	copy(salt, data[headerLen:headerLen+saltLen])

	plain, err := runCTR(c.AuthenticityKey, salt, body)
	if err != nil {
		return nil, err
	}

	elements, err := parseElements(plain[identityLen:])
	if err != nil {
		return nil, err
	}

	return &Advertisement{
		Version:      version,
		Salt:         salt,
		Identity:     plain[:identityLen],
		DataElements: elements,
	}, nil
}

// Bytes encodes the advertisement under the given credential. This is the
// broadcaster-side inverse of FromBytes.
func (a *Advertisement) Bytes(c nearby.PublicCredential) ([]byte, error) {
	if len(a.Identity) != identityLen {
		return nil, errIdentityEncode
	}
	if len(a.Salt) != saltLen {
		return nil, errors.New("salt must be 2 bytes")
	}

	body := make([]byte, 0, identityLen+len(a.DataElements)*2)
	body = append(body, a.Identity...)
	for _, de := range a.DataElements {
		if len(de.Value) == 0 || len(de.Value) > maxElementLen ||
			de.Key < 0 || de.Key > maxElementKey {
			return nil, errElementEncode
		}
		body = append(body, byte(len(de.Value)<<4|de.Key))
		body = append(body, de.Value...)
	}

	enc, err := runCTR(c.AuthenticityKey, a.Salt, body)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLen+saltLen+len(enc)+tagLen)
	out = append(out, byte(Version<<5))
	out = append(out, a.Salt...)
	out = append(out, enc...)

	tag, err := computeTag(c.AuthenticityKey, out)
	if err != nil {
		return nil, err
	}

	return append(out, tag...), nil
}

func parseElements(b []byte) ([]nearby.DataElement, error) {
	var out []nearby.DataElement
	for i := 0; i < len(b); {
		hdr := b[i]
		length := int(hdr >> 4)
		key := int(hdr & 0x0f)
		if length == 0 || i+1+length > len(b) {
			return nil, errElementBounds
		}
		value := make([]byte, length)
		copy(value, b[i+1:i+1+length])
		out = append(out, nearby.DataElement{Key: key, Value: value})
		i += 1 + length
	}
	return out, nil
}
