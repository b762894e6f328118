// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scheduler

import (
	"math/rand"
	"time"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// FieldBalancer hands fields out to matches so that usage stays even.
// Each assignment picks randomly among the least-used fields and stamps
// the match with the field's next free time slot.
type FieldBalancer struct {
	fields []models.Field
	usage  map[string]int
	nextAt map[string]time.Time
	cycle  time.Duration
	rnd    *rand.Rand
}

// NewFieldBalancer prepares a balancer over the given fields, all starting
// free at start. Returns models.ErrNoFieldsAvailable when fields is empty.
func NewFieldBalancer(fields []models.Field, start time.Time, cycle time.Duration, rnd *rand.Rand) (*FieldBalancer, error) {
	if len(fields) == 0 {
		return nil, models.ErrNoFieldsAvailable
	}
	b := &FieldBalancer{
		fields: fields,
		usage:  make(map[string]int, len(fields)),
		nextAt: make(map[string]time.Time, len(fields)),
		cycle:  cycle,
		rnd:    rnd,
	}
	for _, field := range fields {
		b.nextAt[field.ID] = start
	}
	return b, nil
}

// Assign sets the match's field and scheduled time and advances the
// field's next free slot by one cycle.
func (b *FieldBalancer) Assign(match *models.Match) {
	least := b.usage[b.fields[0].ID]
	for _, field := range b.fields[1:] {
		if b.usage[field.ID] < least {
			least = b.usage[field.ID]
		}
	}
	candidates := make([]models.Field, 0, len(b.fields))
	for _, field := range b.fields {
		if b.usage[field.ID] == least {
			candidates = append(candidates, field)
		}
	}
	chosen := candidates[b.rnd.Intn(len(candidates))]

	match.FieldID = chosen.ID
	match.ScheduledAt = b.nextAt[chosen.ID]
	b.usage[chosen.ID]++
	b.nextAt[chosen.ID] = match.ScheduledAt.Add(b.cycle)
}

// Usage returns a copy of the per-field assignment counts.
func (b *FieldBalancer) Usage() map[string]int {
	out := make(map[string]int, len(b.usage))
	for id, n := range b.usage {
		out[id] = n
	}
	return out
}
