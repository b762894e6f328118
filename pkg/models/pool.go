// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	TeamIDs *sync2.Pool[[]string]
}

func NewPool() *Pool {
	return &Pool{
		TeamIDs: &sync2.Pool[[]string]{
			New: func() []string {
				return make([]string, 0, 2*MaxAllianceSize)
			},
		},
	}
}
