package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagValid(t *testing.T) {
	for _, tag := range AllTags {
		assert.True(t, tag.Valid(), string(tag))
	}
	assert.True(t, Tag("").Valid())
	assert.False(t, Tag("travail").Valid())
	assert.False(t, Tag("Voisins").Valid())
}

// TestPatchApply verifies that only the fields present in the patch are changed and that the
// person passed in is left alone.
func TestPatchApply(t *testing.T) {
	age := 41
	work := TagWork
	before := Person{Id: "1", Name: "Erika", Email: "erika@example.com", Age: &age, Tag: &work}

	var patch PersonPatch
	require.NoError(t, json.Unmarshal([]byte(`{"job": "Designer", "age": 42, "tag": "Amis"}`), &patch))
	assert.False(t, patch.Empty())
	updated := patch.Apply(before)

	assert.Equal(t, "Designer", updated.Job)
	assert.Equal(t, 42, *updated.Age)
	assert.Equal(t, TagFriends, updated.TagOrEmpty())
	assert.Equal(t, "Erika", updated.Name)
	assert.Equal(t, "erika@example.com", updated.Email)

	assert.Equal(t, 41, *before.Age)
	assert.Equal(t, TagWork, before.TagOrEmpty())
	assert.Empty(t, before.Job)
}

// TestPatchClears verifies that empty values clear the optional fields.
func TestPatchClears(t *testing.T) {
	age := 41
	work := TagWork
	before := Person{Id: "1", Name: "Erika", Age: &age, Tag: &work, BirthDate: "1985-02-01"}

	var patch PersonPatch
	require.NoError(t, json.Unmarshal([]byte(`{"age": 0, "tag": "", "birthDate": ""}`), &patch))
	updated := patch.Apply(before)
	assert.Nil(t, updated.Age)
	assert.Nil(t, updated.Tag)
	assert.Empty(t, updated.BirthDate)
}

func TestPatchEmpty(t *testing.T) {
	var patch PersonPatch
	require.NoError(t, json.Unmarshal([]byte(`{"unknown": 1}`), &patch))
	assert.True(t, patch.Empty())
}

func TestStateHelpers(t *testing.T) {
	state := InitialState()
	state.People = []Person{
		{Id: "1", Name: "Aaron", IsFavorite: true},
		{Id: "2", Name: "Berta"},
		{Id: "3", Name: "Carla", IsFavorite: true},
	}
	assert.Equal(t, 2, state.FavoriteCount())
	person, found := state.FindPerson("2")
	assert.True(t, found)
	assert.Equal(t, "Berta", person.Name)
	_, found = state.FindPerson("4")
	assert.False(t, found)
}

// TestPersonJSON pins the field names of the persisted document.
func TestPersonJSON(t *testing.T) {
	data, err := json.Marshal(Person{Id: "1", Name: "Aaron"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "1", "name": "Aaron", "email": "", "age": null, "phone": "", "job": "",
		"company": "", "address": "", "notes": "", "avatarColor": "",
		"isFavorite": false, "tag": null, "picture": null
	}`, string(data))
}
