// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package eventbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/constants"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/testsetup"
)

func TestPublishScheduleGenerated(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	bus := NewBus(&config.Config{EventBufferSize: 4})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := bus.Subscribe(ctx, constants.TopicScheduleGenerated)
	assert.NoError(t, err)

	event := ScheduleGeneratedEvent{
		TournamentID: "tour-1",
		StageID:      "stage-1",
		StageType:    models.StageTypeOptimized,
		MatchCount:   12,
		GeneratedAt:  time.Now().UTC(),
	}
	assert.NoError(t, bus.PublishScheduleGenerated(scope, event))

	select {
	case msg := <-messages:
		var got ScheduleGeneratedEvent
		assert.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, event.StageID, got.StageID)
		assert.Equal(t, event.MatchCount, got.MatchCount)
		assert.Equal(t, scope.TraceID, msg.Metadata.Get(traceIDMetadataKey))
		assert.NotEmpty(t, msg.UUID)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no event received")
	}
}
