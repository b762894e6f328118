// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/common"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/sirupsen/logrus"
)

// NewTestScope creates a new scope for test use. Set TEST_LOG_LEVEL to
// raise verbosity when debugging a run; logs are silenced by default.
func NewTestScope() *envelope.Scope {
	level, err := logrus.ParseLevel(common.GetEnv("TEST_LOG_LEVEL", logrus.PanicLevel.String()))
	if err != nil {
		level = logrus.PanicLevel
	}
	logger := logrus.New()
	logger.SetLevel(level)

	scope := envelope.NewRootScope(context.Background(), "test", "")
	scope.SetLogger(logger)
	return scope
}

// NewTestScopeWithLogger creates a new scope using the given logger for test use
func NewTestScopeWithLogger(logger *logrus.Logger) *envelope.Scope {
	scope := envelope.NewRootScope(context.Background(), "test", "")
	scope.SetLogger(logger)
	return scope
}
