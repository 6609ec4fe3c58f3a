package provider

import (
	"strconv"

	"github.com/go-nearby/nearby"
)

// BuildRecord assembles the emitted device record from scan metadata and,
// when present, a resolved presence match or a fixed-id payload.
//
// The base identifier derives from the physical address. A presence match
// whose credential carries a non-empty secret ID overrides it: the address
// may be randomized and rotating while the secret ID is stable per
// logical device.
func BuildRecord(res nearby.ScanResult, match *Match) *nearby.DeviceRecord {
	rec := &nearby.DeviceRecord{
		DeviceID: nearby.HashDeviceID([]byte(res.Address)),
		Medium:   nearby.MediumBLE,
		RSSI:     res.RSSI,
		TxPower:  res.TxPower,
		Name:     res.Name,
		Address:  res.Address,
	}

	if data := res.GetServiceData(nearby.FastPairUUID); data != nil {
		rec.Data = data
		return rec
	}

	if match != nil {
		rec.PresenceDevice = presenceDevice(res, match)
		rec.EncryptionKeyTag = match.Credential.EncryptedMetadataKeyTag
		if match.Credential.HasSecretID() {
			rec.DeviceID = nearby.HashDeviceID(match.Credential.SecretID)
		}
	}

	return rec
}

func presenceDevice(res nearby.ScanResult, match *Match) *nearby.PresenceDevice {
	adv := match.Advertisement
	dev := &nearby.PresenceDevice{
		DeviceID: strconv.Itoa(int(nearby.HashDeviceID(adv.Identity))),
		Salt:     adv.Salt,
		SecretID: match.Credential.SecretID,
		Identity: adv.Identity,
		Medium:   nearby.MediumBLE,
		Name:     res.Name,
		RSSI:     res.RSSI,
	}
	dev.ExtendedProperties = append(dev.ExtendedProperties, adv.DataElements...)
	return dev
}
