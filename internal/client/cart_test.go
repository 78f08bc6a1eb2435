package client

import (
	"testing"

	"school-store/internal/domain/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoodieItem() dto.ItemDTO {
	return dto.ItemDTO{
		ID:   uuid.New(),
		Name: "Hoodie",
		SizePricing: map[string]int{
			"small":  100,
			"medium": 250,
			"large":  500,
		},
	}
}

func TestCart_Add_RepeatedAddsStayDistinctLines(t *testing.T) {
	cart := NewCart()
	item := hoodieItem()

	first, err := cart.Add(item, "medium")
	require.NoError(t, err)
	second, err := cart.Add(item, "medium")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, 500, cart.Total())
}

func TestCart_Add_ResolvesAliasToCanonicalSizePrice(t *testing.T) {
	cart := NewCart()

	line, err := cart.Add(hoodieItem(), "M")
	require.NoError(t, err)

	assert.Equal(t, "medium", line.Size)
	assert.Equal(t, 250, line.Price)
}

func TestCart_Add_RequiresSize(t *testing.T) {
	cart := NewCart()

	_, err := cart.Add(hoodieItem(), "")

	assert.ErrorIs(t, err, ErrSizeRequired)
	assert.Equal(t, 0, cart.Len())
}

func TestCart_Add_RejectsSizeNotOfferedForItem(t *testing.T) {
	cart := NewCart()

	_, err := cart.Add(hoodieItem(), "xlarge")

	assert.ErrorIs(t, err, ErrSizeRequired)
	assert.Equal(t, 0, cart.Len())
}

func TestCart_Remove_DropsOnlyTheNamedLine(t *testing.T) {
	cart := NewCart()
	item := hoodieItem()

	keep, err := cart.Add(item, "small")
	require.NoError(t, err)
	drop, err := cart.Add(item, "large")
	require.NoError(t, err)

	cart.Remove(drop.ID)

	require.Equal(t, 1, cart.Len())
	assert.Equal(t, keep.ID, cart.Lines()[0].ID)
	assert.Equal(t, 100, cart.Total())
}

func TestCart_Remove_UnknownLineIsANoOp(t *testing.T) {
	cart := NewCart()
	_, err := cart.Add(hoodieItem(), "small")
	require.NoError(t, err)

	cart.Remove(uuid.New())

	assert.Equal(t, 1, cart.Len())
}

func TestCart_PriceFrozenAtAddTime(t *testing.T) {
	cart := NewCart()
	item := hoodieItem()

	line, err := cart.Add(item, "medium")
	require.NoError(t, err)

	// a later catalog change must not reprice existing lines
	item.SizePricing["medium"] = 9999

	assert.Equal(t, 250, line.Price)
	assert.Equal(t, 250, cart.Total())
}

func TestCart_Lines_ReturnsACopy(t *testing.T) {
	cart := NewCart()
	_, err := cart.Add(hoodieItem(), "small")
	require.NoError(t, err)

	lines := cart.Lines()
	lines[0].Price = 12345

	assert.Equal(t, 100, cart.Total())
}

func TestCart_Clear_EmptiesTheCart(t *testing.T) {
	cart := NewCart()
	item := hoodieItem()
	_, err := cart.Add(item, "small")
	require.NoError(t, err)
	_, err = cart.Add(item, "large")
	require.NoError(t, err)

	cart.Clear()

	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 0, cart.Total())
}
