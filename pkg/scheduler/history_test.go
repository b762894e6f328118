// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scheduler

import (
	"testing"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

func TestMatchupHistory(t *testing.T) {
	matches := []models.Match{
		{
			Red:  models.Alliance{Color: models.AllianceRed, TeamIDs: []string{"a", "b"}},
			Blue: models.Alliance{Color: models.AllianceBlue, TeamIDs: []string{"c", "d"}},
		},
		{
			Red:  models.Alliance{Color: models.AllianceRed, TeamIDs: []string{"a", "c"}},
			Blue: models.Alliance{Color: models.AllianceBlue, TeamIDs: []string{"b", "d"}},
		},
	}
	h := NewMatchupHistory(matches)

	tests := []struct {
		name          string
		a, b          string
		wantPartners  int
		wantOpponents int
	}{
		{name: "partnered once", a: "a", b: "b", wantPartners: 1, wantOpponents: 1},
		{name: "opposed twice", a: "a", b: "d", wantPartners: 0, wantOpponents: 2},
		{name: "both roles", a: "b", b: "c", wantPartners: 0, wantOpponents: 2},
		{name: "symmetric", a: "d", b: "a", wantPartners: 0, wantOpponents: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.PartnerCount(tt.a, tt.b); got != tt.wantPartners {
				t.Errorf("PartnerCount = %d, want %d", got, tt.wantPartners)
			}
			if got := h.OpponentCount(tt.a, tt.b); got != tt.wantOpponents {
				t.Errorf("OpponentCount = %d, want %d", got, tt.wantOpponents)
			}
			if got := h.MeetCount(tt.a, tt.b); got != tt.wantPartners+tt.wantOpponents {
				t.Errorf("MeetCount = %d, want %d", got, tt.wantPartners+tt.wantOpponents)
			}
		})
	}

	if h.HaveMet("a", "zzz") {
		t.Error("unknown pair should not have met")
	}
	if !h.HaveMet("a", "c") {
		t.Error("a and c have met")
	}
}
