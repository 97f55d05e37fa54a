// Package header stamps serialized reports with an identifying
// envelope: the report kind, a versioned schema identifier, and
// free-form metadata such as the generation timestamp. Consumers can
// use the envelope to tell report payloads apart without parsing them.
package header

import (
	"fmt"
	"strings"
	"time"
)

// APIVersionDomain and APIVersionV1 form the schema identifier
// "<kind>.<domain>/<version>" written by Set.
var (
	APIVersionDomain = "cisco.com"
	APIVersionV1     = "v1"
)

// Header is the envelope embedded at the top of serialized reports.
type Header struct {
	// Kind names the report payload, e.g. "CommandReference".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the versioned schema identifier for the payload.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata holds free-form key-value pairs about the report.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option configures a Header built by New.
type Option func(*Header)

// WithKind sets the report kind.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the schema identifier.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithMetadata adds one metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// New builds a Header from the given options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Set fills the envelope for the given kind: the APIVersion becomes
// "<kind>.cisco.com/v1" (kind lowercased) and the metadata records the
// generation timestamp. Any previous metadata is discarded.
func (h *Header) Set(kind string) {
	h.Kind = kind
	h.APIVersion = fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), APIVersionDomain, APIVersionV1)
	h.Metadata = map[string]string{
		"generated-timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}
