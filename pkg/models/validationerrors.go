// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

// Configuration errors: invalid inputs, surfaced to the caller and never
// retried automatically.
var (
	ErrAllianceSizeOutOfRange = errors.New("alliance size must be between 1 and 3")
	ErrRoundCountOutOfRange   = errors.New("round count must be at least 1")
	ErrInsufficientTeams      = errors.New("not enough teams for the requested match size")
	ErrNoFieldsAvailable      = errors.New("no fields available for assignment")
	ErrStageTypeMismatch      = errors.New("operation does not match the stage type")
)

// State errors: the operation is valid but the target is not in a state
// that allows it. The caller decides whether to retry later.
var (
	ErrMatchNotCompleted = errors.New("match is not completed")
	ErrWinnerNotRecorded = errors.New("match has no recorded winner")
	ErrNoForwardMatch    = errors.New("match has no forward reference")
	ErrAlreadyAdvanced   = errors.New("match winner already advanced")
	ErrBracketIncomplete = errors.New("bracket has uncompleted matches")
	ErrBracketCyclic     = errors.New("bracket forward references form a cycle")
	ErrStageLocked       = errors.New("another operation holds the stage lock")
	ErrMatchCompleted    = errors.New("match already has a final result")
)

// Data errors: referenced records do not exist.
var (
	ErrStageNotFound = errors.New("stage not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrFieldNotFound = errors.New("field not found")
	ErrTeamNotFound  = errors.New("team not found")
)

var validationErrorCodeMap = map[error]int{
	ErrAllianceSizeOutOfRange: 520101,
	ErrRoundCountOutOfRange:   520102,
	ErrInsufficientTeams:      520103,
	ErrNoFieldsAvailable:      520104,
	ErrStageTypeMismatch:      520105,
	ErrMatchNotCompleted:      520201,
	ErrWinnerNotRecorded:      520202,
	ErrNoForwardMatch:         520203,
	ErrAlreadyAdvanced:        520204,
	ErrBracketIncomplete:      520205,
	ErrBracketCyclic:          520206,
	ErrStageLocked:            520207,
	ErrMatchCompleted:         520208,
	ErrStageNotFound:          520301,
	ErrMatchNotFound:          520302,
	ErrFieldNotFound:          520303,
	ErrTeamNotFound:           520304,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for e, code := range validationErrorCodeMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return 20002
}
