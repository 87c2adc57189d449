// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"errors"
	"time"
)

const (
	defaultVerifierCacheSize = 1024
)

var (
	errNegativeCacheSize     = errors.New("verifier cache size cannot be negative")
	errNegativeDisputePeriod = errors.New("dispute period cannot be negative")
)

// Config holds the tunables of a Chain
type Config struct {
	// VerifierCacheSize is the number of inclusion checks remembered.
	// 0 disables caching.
	VerifierCacheSize int `json:"verifierCacheSize"`

	// DisputePeriod closes a commitment to fraud claims once it has elapsed
	// since the commitment's timestamp. 0 leaves disputes open forever.
	DisputePeriod time.Duration `json:"disputePeriod"`
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		VerifierCacheSize: defaultVerifierCacheSize,
	}
}

// Validate returns an error if [c] can't be used to build a Chain
func (c Config) Validate() error {
	if c.VerifierCacheSize < 0 {
		return errNegativeCacheSize
	}
	if c.DisputePeriod < 0 {
		return errNegativeDisputePeriod
	}
	return nil
}
