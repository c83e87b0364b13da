package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOverride(t *testing.T) {
	base := NewLayout("Commander", Pascal, "fid", "name")
	l := base.Override("fid", "FID")

	name, ok := l.InputName("fid")
	require.True(t, ok)
	assert.Equal(t, "FID", name)

	// The original is unchanged.
	name, _ = base.InputName("fid")
	assert.Equal(t, "Fid", name)

	_, ok = l.InputName("nope")
	assert.False(t, ok)
}

func TestLayoutOverrideUndeclaredPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewLayout("x", Pascal, "a").Override("b", "B")
	})
}

func TestNewLayoutDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewLayout("x", Pascal, "a", "a")
	})
}

func TestLayoutKeysIncludePrefix(t *testing.T) {
	l := NewLayout("Crew", Pascal, "hired", "fired").WithPrefix("NpcCrew_")
	assert.Equal(t, []string{"NpcCrew_Fired", "NpcCrew_Hired"}, l.Keys())
	assert.Equal(t, "NpcCrew_", l.Prefix())
	assert.Equal(t, []string{"hired", "fired"}, l.Fields())
}

func TestMergeDisjoint(t *testing.T) {
	version := NewLayout("Version", Lower, "game_version", "build", "language")
	header := NewLayout("Fileheader", Lower, "part", "odyssey").Override("odyssey", "Odyssey")

	merged, err := Merge("Fileheader", header, version)
	require.NoError(t, err)
	assert.Equal(t, []string{"Odyssey", "build", "gameversion", "language", "part"}, merged.Keys())
	assert.Len(t, merged.Fields(), 5)
}

func TestMergeCollision(t *testing.T) {
	a := NewLayout("GameType", Pascal, "odyssey", "horizons")
	b := NewLayout("Header", Lower, "odyssey").Override("odyssey", "Odyssey")

	_, err := Merge("LoadGame", a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Odyssey"`)
	assert.Contains(t, err.Error(), "GameType")

	assert.Panics(t, func() { MustMerge("LoadGame", a, b) })
}

func TestMergePrefixesKeepGroupsApart(t *testing.T) {
	crew := NewLayout("Crew", Pascal, "total").WithPrefix("NpcCrew_")
	multi := NewLayout("Multicrew", Pascal, "total").WithPrefix("Multicrew_")

	_, err := Merge("Stats", crew, multi)
	assert.NoError(t, err)
}

func TestStripPrefix(t *testing.T) {
	obj := Object{
		"Passengers_Missions_Bulk": 1,
		"Passengers_Missions_VIP":  2,
		"Passengers_Bulk":          3,
		"Bulk":                     4,
	}
	got := StripPrefix(obj, "Passengers_Missions_")
	assert.Equal(t, Object{"Bulk": 1, "VIP": 2}, got)
}
