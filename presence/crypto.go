package presence

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"

	"github.com/aead/cmac"
	"github.com/pkg/errors"
	ecdh "github.com/wsddn/go-ecdh"

	"github.com/go-nearby/nearby/sliceops"
)

const authKeyLen = 16

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != authKeyLen {
		return nil, errKeyLen
	}
	return aes.NewCipher(key)
}

// runCTR encrypts or decrypts body with AES-128-CTR. The IV is the salt
// zero-padded to a block; the salt is fresh per broadcast, so the keystream
// never repeats under one key.
func runCTR(key, salt, body []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(body))
	iv := sliceops.PadRight(salt, aes.BlockSize)
	cipher.NewCTR(block, iv).XORKeyStream(out, body)
	return out, nil
}

func computeTag(key, msg []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	return cmac.Sum(msg, block, tagLen)
}

func verifyTag(key, msg, tag []byte) bool {
	block, err := newBlock(key)
	if err != nil {
		return false
	}
	return cmac.Verify(tag, msg, block, tagLen)
}

var curve = ecdh.NewEllipticECDH(elliptic.P256())

// GenerateKeyPair creates a fresh P-256 key pair for credential exchange.
// The public key is returned marshaled, ready to hand to the peer.
func GenerateKeyPair() (crypto.PrivateKey, []byte, error) {
	priv, pub, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate key pair")
	}
	return priv, curve.Marshal(pub), nil
}

// DeriveAuthenticityKey computes the shared 16-byte authenticity key from
// a local private key and the peer's marshaled public key. Both sides of
// the exchange derive the same key.
func DeriveAuthenticityKey(priv crypto.PrivateKey, peerPub []byte) ([]byte, error) {
	pub, ok := curve.Unmarshal(peerPub)
	if !ok {
		return nil, errors.New("invalid peer public key")
	}

	secret, err := curve.GenerateSharedSecret(priv, pub)
	if err != nil {
		return nil, errors.Wrap(err, "derive shared secret")
	}

	sum := sha256.Sum256(secret)
	return sum[:authKeyLen], nil
}
