// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package eventbus publishes scheduling lifecycle events over an
// in-process pub/sub channel so embedding services can react to new
// schedules, bracket movement and standings refreshes.
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/oklog/ulid/v2"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/constants"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

const traceIDMetadataKey = "traceId"

// ScheduleGeneratedEvent announces a freshly persisted batch of matches.
type ScheduleGeneratedEvent struct {
	TournamentID string           `json:"tournamentId"`
	StageID      string           `json:"stageId"`
	StageType    models.StageType `json:"stageType"`
	MatchCount   int              `json:"matchCount"`
	GeneratedAt  time.Time        `json:"generatedAt"`
}

// BracketAdvancedEvent announces a winner moving into its next match.
type BracketAdvancedEvent struct {
	StageID       string               `json:"stageId"`
	MatchID       string               `json:"matchId"`
	TargetMatchID string               `json:"targetMatchId"`
	Color         models.AllianceColor `json:"color"`
}

// StandingsRefreshedEvent announces recomputed standings.
type StandingsRefreshedEvent struct {
	TournamentID string `json:"tournamentId"`
	StageID      string `json:"stageId"`
	TeamCount    int    `json:"teamCount"`
}

// Bus wraps the in-process pub/sub. Publishing never blocks the caller
// beyond the configured buffer.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus(cfg *config.Config) *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: int64(cfg.EventBufferSize),
		}, newWatermillLogger()),
	}
}

// Subscribe returns the message stream of one topic. The channel closes
// when ctx is done or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}

func (b *Bus) PublishScheduleGenerated(scope *envelope.Scope, event ScheduleGeneratedEvent) error {
	return b.publish(scope, constants.TopicScheduleGenerated, event)
}

func (b *Bus) PublishBracketAdvanced(scope *envelope.Scope, event BracketAdvancedEvent) error {
	return b.publish(scope, constants.TopicBracketAdvanced, event)
}

func (b *Bus) PublishStandingsRefreshed(scope *envelope.Scope, event StandingsRefreshedEvent) error {
	return b.publish(scope, constants.TopicStandingsRefreshed, event)
}

func (b *Bus) publish(scope *envelope.Scope, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(ulid.Make().String(), payload)
	msg.Metadata.Set(traceIDMetadataKey, scope.TraceID)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		scope.Log.WithField("topic", topic).WithError(err).Error("failed to publish event")
		return err
	}
	return nil
}
