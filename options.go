package plankton

import (
	"github.com/tundralabs/plankton/schema"
	"github.com/tundralabs/plankton/value"
)

// An Option configures a codec call. The zero value of config is ready to
// use: value.DefaultFactory, value.DefaultClassifier, and no schema
// registry.
type Option func(*config)

type config struct {
	factory    value.DataFactory
	classifier value.Classifier
	registry   *schema.Registry
}

func newConfig(opts []Option) *config {
	c := &config{
		factory:    value.DefaultFactory{},
		classifier: value.DefaultClassifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFactory overrides the value.DataFactory a Decode call builds
// composites with.
func WithFactory(factory value.DataFactory) Option {
	return func(c *config) { c.factory = factory }
}

// WithClassifier overrides the value.Classifier an Encode call uses to
// tell application values apart.
func WithClassifier(classifier value.Classifier) Option {
	return func(c *config) { c.classifier = classifier }
}

// WithSchema records a schema.Registry in the call's configuration. No
// encode or decode path reads it, so it has no effect on encoding,
// decoding, or validation; cmd/planktonctl's dump command annotates seed
// headers by querying its registry directly.
func WithSchema(registry *schema.Registry) Option {
	return func(c *config) { c.registry = registry }
}
