package provider

import (
	"github.com/go-nearby/nearby"
	"github.com/go-nearby/nearby/presence"
)

// Codec attempts to decode raw presence service data with one credential.
// A non-nil error means "this credential does not apply"; individual
// causes are never surfaced by resolution.
type Codec func([]byte, nearby.PublicCredential) (*presence.Advertisement, error)

// Match is a successful resolution: the decoded advertisement and the
// credential that produced it.
type Match struct {
	Advertisement *presence.Advertisement
	Credential    nearby.PublicCredential
}

// Resolver performs ordered trial decryption of presence service data
// across the credentials of a filter snapshot.
type Resolver struct {
	decode Codec
}

// NewResolver builds a resolver around the given decode primitive, or the
// presence codec when nil.
func NewResolver(decode Codec) *Resolver {
	if decode == nil {
		decode = presence.FromBytes
	}
	return &Resolver{decode: decode}
}

// Resolve iterates presence filters in their given order and each
// filter's credentials in their given order, attempting decryption with
// every credential. The first success wins and ends the search. A nil
// filter set resolves nothing.
//
// Cost is O(filters x credentials) decode attempts when nothing matches,
// which is the common case; the authentication material is deliberately
// not indexable by a plaintext key.
func (r *Resolver) Resolve(data []byte, filters []nearby.ScanFilter) (Match, bool) {
	for _, f := range filters {
		pf, ok := f.(nearby.PresenceFilter)
		if !ok {
			continue
		}
		for _, cred := range pf.Credentials {
			adv, err := r.decode(data, cred)
			if err != nil {
				continue
			}
			return Match{Advertisement: adv, Credential: cred}, true
		}
	}
	return Match{}, false
}
