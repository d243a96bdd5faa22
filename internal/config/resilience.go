package config

import (
	"errors"
	"io/fs"
	"time"

	"torn_trade_values/internal/retry"
	"torn_trade_values/internal/torn"
)

type ResilienceConfig struct {
	ValueLoad  retry.Config
	APIRequest retry.Config
	Notify     retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	ValueLoad: retry.Config{
		MaxRetries: 2,
		BaseDelay:  250 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Timeout:    10 * time.Second,
		Retryable:  IsTransient,
	},
	APIRequest: retry.Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   10 * time.Second,
		Timeout:    15 * time.Second,
		Retryable:  IsTransientRequest,
	},
	Notify: retry.Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    10 * time.Second,
	},
}

// IsTransient treats missing files and permission problems as permanent;
// everything else (network, locked databases, API hiccups) may succeed on retry.
func IsTransient(err error) bool {
	return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
}

// IsTransientRequest stops retrying on Torn errors that no wait can fix, such as
// an incorrect key. A joined error (one per pooled key) is transient when any
// part of it is.
func IsTransientRequest(err error) bool {
	switch e := err.(type) {
	case *torn.APIError:
		return e.Transient()
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsTransientRequest(inner) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		if inner := e.Unwrap(); inner != nil {
			return IsTransientRequest(inner)
		}
	}
	return true
}
