package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger: JSON production output by default,
// human-readable console output in development mode.
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
