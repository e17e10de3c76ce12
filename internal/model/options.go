package model

import "go.uber.org/zap"

// Options configures the behaviour of the Normalizer. Options are constructed
// by the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
	Logger  *zap.Logger
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		Logger:  zap.NewNop(),
	}
}
