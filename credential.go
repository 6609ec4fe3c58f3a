package nearby

// PublicCredential is the authentication material a scanner holds for one
// logical remote device. The authenticity key drives trial decryption; the
// secret ID and the encrypted-metadata key tag are carried through to the
// device record on a successful match.
//
// Credentials are immutable once added to a filter.
type PublicCredential struct {
	SecretID                []byte
	AuthenticityKey         []byte
	PublicKey               []byte
	EncryptedMetadata       []byte
	EncryptedMetadataKeyTag []byte
}

// HasSecretID reports whether the credential carries a non-empty secret
// identifier usable as a stable device identity.
func (c PublicCredential) HasSecretID() bool {
	return len(c.SecretID) > 0
}
