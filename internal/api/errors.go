package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus wraps any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrDecode matches every FetchError of KindDecode.
	ErrDecode = errors.New("decode failed")
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Client method that touches the network.
type FetchError struct {
	Op         string
	URL        string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %s error: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrDecode && e.Kind == KindDecode
}
