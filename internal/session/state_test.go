package session

import (
	"foodindex/internal/engine"
	"foodindex/internal/models"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	subindices []string
	competing  []string
}

func (f fakeSchema) SubindexFields() []string  { return f.subindices }
func (f fakeSchema) CompetingFields() []string { return f.competing }

var schema = fakeSchema{
	subindices: []string{"Bread", "Milk"},
	competing:  []string{"CompA", "CompB"},
}

func TestResolveDefaultsToFirstOption(t *testing.T) {
	st := NewState()
	assert.Equal(t, models.Selection{Subindex: "Bread", Competing: "CompA"}, st.Resolve(schema))
	assert.False(t, st.ShowRaw())
}

func TestSetChoices(t *testing.T) {
	st := NewState()

	require.NoError(t, st.SetSubindexChoice(schema, "Milk"))
	require.NoError(t, st.SetCompetingChoice(schema, "CompB"))
	assert.Equal(t, models.Selection{Subindex: "Milk", Competing: "CompB"}, st.Resolve(schema))

	require.NoError(t, st.SetCompetingChoice(schema, "CompA"))
	assert.Equal(t, "CompA", st.Resolve(schema).Competing)
}

func TestUnknownChoiceFallsBackToDefault(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetSubindexChoice(schema, "Milk"))

	err := st.SetSubindexChoice(schema, "Cheese")
	assert.True(t, errors.Is(err, engine.FieldNotFoundError), "got %v", err)
	assert.Equal(t, "Bread", st.Resolve(schema).Subindex)

	err = st.SetCompetingChoice(schema, "MainIdx")
	assert.True(t, errors.Is(err, engine.FieldNotFoundError), "got %v", err)
	assert.Equal(t, "CompA", st.Resolve(schema).Competing)
}

func TestResolveDropsStaleChoice(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetSubindexChoice(schema, "Milk"))

	reloaded := fakeSchema{subindices: []string{"Eggs", "Rice"}, competing: schema.competing}
	assert.Equal(t, "Eggs", st.Resolve(reloaded).Subindex)
}

func TestShowRawDoesNotTouchSelection(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetSubindexChoice(schema, "Milk"))

	st.SetShowRaw(true)
	assert.True(t, st.ShowRaw())
	assert.Equal(t, "Milk", st.Resolve(schema).Subindex)

	st.SetShowRaw(false)
	assert.False(t, st.ShowRaw())
	assert.Equal(t, "Milk", st.Resolve(schema).Subindex)
}

func TestNotices(t *testing.T) {
	st := NewState()
	st.AddNotice("one")
	st.AddNotice("two")

	assert.Equal(t, []string{"one", "two"}, st.TakeNotices())
	assert.Empty(t, st.TakeNotices())
}
