package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWealthSnapshot_FindEntry(t *testing.T) {
	accountA := uuid.New()
	accountB := uuid.New()

	snapshot := WealthSnapshot{
		Entries: []LiquidityEntry{
			{AccountID: accountA, Value: decimal.NewFromInt(1000), ConvertedValue: decimal.NewFromInt(1100)},
			{AccountID: accountB, Value: decimal.NewFromInt(500), ConvertedValue: decimal.NewFromInt(500)},
		},
	}

	assert.Equal(t, 0, snapshot.FindEntry(accountA))
	assert.Equal(t, 1, snapshot.FindEntry(accountB))
	assert.Equal(t, -1, snapshot.FindEntry(uuid.New()))
}

func TestWealthSnapshot_CloneEntries(t *testing.T) {
	accountA := uuid.New()
	snapshot := WealthSnapshot{
		Entries: []LiquidityEntry{
			{AccountID: accountA, Value: decimal.NewFromInt(1000), ConvertedValue: decimal.NewFromInt(1100)},
		},
	}

	clone := snapshot.CloneEntries()
	clone[0].ConvertedValue = decimal.NewFromInt(9999)

	// The original snapshot must not be affected by edits to the clone
	assert.True(t, snapshot.Entries[0].ConvertedValue.Equal(decimal.NewFromInt(1100)))
}

func TestSumEntries(t *testing.T) {
	entries := []LiquidityEntry{
		{AccountID: uuid.New(), ConvertedValue: decimal.NewFromInt(1100)},
		{AccountID: uuid.New(), ConvertedValue: decimal.NewFromFloat(250.25)},
		{AccountID: uuid.New(), ConvertedValue: decimal.NewFromFloat(0.75)},
	}

	assert.True(t, SumEntries(entries).Equal(decimal.NewFromInt(1351)))
	assert.True(t, SumEntries(nil).Equal(decimal.Zero))
}

func TestWealthSnapshot_CheckTotal(t *testing.T) {
	entries := []LiquidityEntry{
		{AccountID: uuid.New(), ConvertedValue: decimal.NewFromInt(1100)},
		{AccountID: uuid.New(), ConvertedValue: decimal.NewFromInt(400)},
	}

	valid := WealthSnapshot{Entries: entries, Total: decimal.NewFromInt(1500)}
	assert.True(t, valid.CheckTotal())

	stale := WealthSnapshot{Entries: entries, Total: decimal.NewFromInt(1400)}
	assert.False(t, stale.CheckTotal())
}
