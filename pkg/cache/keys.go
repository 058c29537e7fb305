package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// keyVersion is baked into every key. Bump it when the cached layout JSON
// or any sink output changes shape, so stale entries are never read back.
const keyVersion = 1

// DefaultKeyer generates keys of the form "type:v<version>:<sha256>".
type DefaultKeyer struct{}

var _ Keyer = DefaultKeyer{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey keys a layout by dataset content and geometry options.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, datasetHash, opts)
}

// ArtifactKey keys one output by layout content and drawing options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}

// ScopedKeyer prefixes the keys of another Keyer, so several tenants or
// deployments can share one backend without seeing each other's entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team:finance:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

var _ Keyer = (*ScopedKeyer)(nil)

// NewScopedKeyer wraps inner (the DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(datasetHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the Hash of v's JSON encoding.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// hashKey hashes the JSON encoding of parts under a typed, versioned prefix.
// Key option structs only hold plain values, so encoding cannot fail.
func hashKey(keyType string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return keyType + ":v" + strconv.Itoa(keyVersion) + ":" + Hash(data)
}
