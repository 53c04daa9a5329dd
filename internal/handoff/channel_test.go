package handoff_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/handoff"
	"github.com/ploychompoo03/management-market/internal/store"
)

func TestFinalizeRejectsEmptyCart(t *testing.T) {
	ch := &handoff.Channel{S: store.NewMemStore()}
	require.ErrorIs(t, ch.Finalize(nil, decimal.NewFromInt(7)), handoff.ErrEmptyCart)
}

func TestFinalizeConsumeDiscard(t *testing.T) {
	ch := &handoff.Channel{S: store.NewMemStore()}
	items := []handoff.Item{
		{ID: "P001", Name: "A", Price: decimal.NewFromInt(50), Qty: 2},
		{ID: "P002", Name: "B", Price: decimal.NewFromInt(20), Qty: 1},
	}
	require.NoError(t, ch.Finalize(items, decimal.NewFromInt(7)))

	p := ch.Consume()
	require.Len(t, p.Items, 2)
	require.Equal(t, "P001", p.Items[0].ID)
	require.Equal(t, 2, p.Items[0].Qty)
	require.True(t, p.VATRate.Equal(decimal.NewFromInt(7)))

	// consume is a read, not a take: re-reading yields the same payload
	again := ch.Consume()
	require.Len(t, again.Items, 2)

	require.NoError(t, ch.Discard())
	require.True(t, ch.Consume().Empty())
}

func TestConsumeDegradesOnMissingOrMalformedSlot(t *testing.T) {
	mem := store.NewMemStore()
	ch := &handoff.Channel{S: mem}

	p := ch.Consume()
	require.True(t, p.Empty())
	require.True(t, p.VATRate.IsZero())

	mem.PutRaw(store.KeyCheckout, []byte("{broken"))
	p = ch.Consume()
	require.True(t, p.Empty())
	require.True(t, p.VATRate.IsZero())
}

func TestSecondFinalizeOverwritesUnconsumedPayload(t *testing.T) {
	ch := &handoff.Channel{S: store.NewMemStore()}
	first := []handoff.Item{{ID: "P001", Name: "A", Price: decimal.NewFromInt(10), Qty: 1}}
	second := []handoff.Item{{ID: "P002", Name: "B", Price: decimal.NewFromInt(99), Qty: 3}}

	require.NoError(t, ch.Finalize(first, decimal.Zero))
	require.NoError(t, ch.Finalize(second, decimal.Zero))

	p := ch.Consume()
	require.Len(t, p.Items, 1)
	require.Equal(t, "P002", p.Items[0].ID)
}
