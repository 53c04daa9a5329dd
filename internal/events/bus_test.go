package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/events"
	"github.com/ploychompoo03/management-market/internal/store"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitPersistsAndFansOut(t *testing.T) {
	mem := store.NewMemStore()
	notifier := &captureNotifier{}
	bus := &events.Bus{
		Store:     mem,
		Notifiers: []events.Notifier{notifier},
		Now:       func() time.Time { return time.Date(2025, 7, 17, 12, 0, 0, 0, time.UTC) },
	}

	ev, err := bus.Emit(context.Background(), events.TopicSaleCompleted, map[string]any{"saleId": "S1"})
	require.NoError(t, err)
	require.NotEmpty(t, ev.ID)
	require.JSONEq(t, `{"saleId":"S1"}`, string(ev.Payload))
	require.Len(t, notifier.events, 1)

	var log []events.Event
	ok, err := mem.Get(store.KeyEvents, &log)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, log, 1)
	require.Equal(t, events.TopicSaleCompleted, log[0].Topic)
}

func TestEmitRequiresTopic(t *testing.T) {
	bus := &events.Bus{Store: store.NewMemStore()}
	_, err := bus.Emit(context.Background(), "  ", nil)
	require.Error(t, err)
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	mem := store.NewMemStore()
	boom := errors.New("boom")
	bus := &events.Bus{Store: mem, Notifiers: []events.Notifier{&captureNotifier{err: boom}}}

	_, err := bus.Emit(context.Background(), events.TopicSaleCompleted, json.RawMessage(`{"x":1}`))
	require.ErrorIs(t, err, boom)

	// the event is still recorded despite the notifier failure
	var log []events.Event
	ok, err2 := mem.Get(store.KeyEvents, &log)
	require.NoError(t, err2)
	require.True(t, ok)
	require.Len(t, log, 1)
}

func TestEmitRejectsInvalidRawPayload(t *testing.T) {
	bus := &events.Bus{Store: store.NewMemStore()}
	_, err := bus.Emit(context.Background(), "x", json.RawMessage("{nope"))
	require.Error(t, err)
}
