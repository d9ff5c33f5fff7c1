// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package casperlog is the narrow logging contract the casper package
// logs through, narrowed down to three structured calls. In this module
// only ValidatorState.Update logs (one Debug call); the fork choice
// takes no logger.
package casperlog

import (
	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// Logger is the structured logger contract consumed by casper.
// github.com/luxfi/log.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// NoOp returns a Logger that discards everything, the default for
// callers that don't wire one in.
func NoOp() Logger {
	return noOp{}
}

// FromLux adapts a github.com/luxfi/log.Logger to Logger.
func FromLux(l log.Logger) Logger {
	return l
}

type noOp struct{}

func (noOp) Debug(string, ...zap.Field) {}
func (noOp) Warn(string, ...zap.Field)  {}
func (noOp) Error(string, ...zap.Field) {}
