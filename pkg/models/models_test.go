// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"testing"
)

func TestWinningAlliance(t *testing.T) {
	red := Alliance{Color: AllianceRed, TeamIDs: []string{"t1", "t2"}}
	blue := Alliance{Color: AllianceBlue, TeamIDs: []string{"t3", "t4"}}

	tests := []struct {
		name     string
		match    Match
		wantOK   bool
		wantSide AllianceColor
	}{
		{
			name:     "red winner",
			match:    Match{Status: MatchStatusCompleted, WinningColor: AllianceRed, Red: red, Blue: blue},
			wantOK:   true,
			wantSide: AllianceRed,
		},
		{
			name:     "blue winner",
			match:    Match{Status: MatchStatusCompleted, WinningColor: AllianceBlue, Red: red, Blue: blue},
			wantOK:   true,
			wantSide: AllianceBlue,
		},
		{
			name:   "tie has no winner",
			match:  Match{Status: MatchStatusCompleted, Red: red, Blue: blue},
			wantOK: false,
		},
		{
			name:   "pending has no winner",
			match:  Match{Status: MatchStatusPending, WinningColor: AllianceRed, Red: red, Blue: blue},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := tt.match.WinningAlliance()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && winner.Color != tt.wantSide {
				t.Errorf("winner color = %v, want %v", winner.Color, tt.wantSide)
			}
		})
	}
}

func TestIsSurrogate(t *testing.T) {
	alliance := Alliance{TeamIDs: []string{"t1", "t2"}, Surrogates: []bool{false, true}}
	if alliance.IsSurrogate(0) {
		t.Error("station 0 should not be a surrogate")
	}
	if !alliance.IsSurrogate(1) {
		t.Error("station 1 should be a surrogate")
	}
	// No marker slice means no surrogates.
	if (Alliance{TeamIDs: []string{"t1"}}).IsSurrogate(0) {
		t.Error("missing markers should mean counting appearance")
	}
}

func TestValidationErrorCode(t *testing.T) {
	if got := ValidationErrorCode(ErrInsufficientTeams); got != 520103 {
		t.Errorf("code = %d, want 520103", got)
	}
	if got := ValidationErrorCode(ErrBracketCyclic); got != 520206 {
		t.Errorf("code = %d, want 520206", got)
	}
	if got := ValidationErrorCode(ErrStageNotFound); got != 520301 {
		t.Errorf("code = %d, want 520301", got)
	}
	if got := ValidationErrorCode(assertUnknownErr); got != 20002 {
		t.Errorf("unknown error code = %d, want 20002", got)
	}
}

var assertUnknownErr = errNotRegistered{}

type errNotRegistered struct{}

func (errNotRegistered) Error() string { return "unregistered" }
