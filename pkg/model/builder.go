package model

import (
	"go.uber.org/zap"

	internalmodel "github.com/goliatone/go-metaform/internal/model"
	"github.com/goliatone/go-metaform/pkg/schema"
)

// Normalizer converts raw schema definitions into canonical descriptors.
type Normalizer interface {
	Normalize(raw schema.RawSchema) (Form, error)
}

// NormalizerOption customises the normalizer built by NewNormalizer.
type NormalizerOption func(*internalmodel.Options)

// WithLabeler overrides the label derivation used for fields without an
// explicit label.
func WithLabeler(labeler func(string) string) NormalizerOption {
	return func(opts *internalmodel.Options) {
		opts.Labeler = labeler
	}
}

// WithLogger attaches a logger used for fail-soft schema diagnostics.
func WithLogger(logger *zap.Logger) NormalizerOption {
	return func(opts *internalmodel.Options) {
		opts.Logger = logger
	}
}

// NewNormalizer constructs the default schema normalizer.
func NewNormalizer(options ...NormalizerOption) Normalizer {
	var opts internalmodel.Options
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return internalmodel.New(opts)
}
