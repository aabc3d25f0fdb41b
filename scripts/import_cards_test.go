package main

import (
	"testing"

	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRecord(t *testing.T) {
	card, err := parseRecord([]string{" Ember ", "RED", "true", "0", "gain: {resource: RED, amount: 1}"})
	require.NoError(t, err)
	assert.Equal(t, "Ember", card.Name)
	assert.Equal(t, "red", card.Kind)
	assert.True(t, card.Starting)
	assert.False(t, card.AlwaysTriggers)
	assert.Equal(t, yaml.MappingNode, card.Effect.Kind)

	blank, err := parseRecord([]string{"Blank", "artifact"})
	require.NoError(t, err)
	assert.Zero(t, blank.Effect.Kind)
}

func TestParseRecord_Errors(t *testing.T) {
	_, err := parseRecord([]string{"Lonely"})
	assert.Error(t, err)

	_, err = parseRecord([]string{"Bad", "red", "", "", "explode"})
	assert.Error(t, err)
}

func TestParseRecord_OutputLoads(t *testing.T) {
	a, err := parseRecord([]string{"A", "blue", "", "1", "add_marker"})
	require.NoError(t, err)
	b, err := parseRecord([]string{"B", "event", "", "", ""})
	require.NoError(t, err)

	out, err := yaml.Marshal(struct {
		Cards []*CardImport `yaml:"cards"`
	}{[]*CardImport{a, b}})
	require.NoError(t, err)

	cat, err := catalog.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, cat.Names())

	tmpl, err := cat.Lookup("A")
	require.NoError(t, err)
	assert.True(t, tmpl.AlwaysTriggers)
}
