package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitHasPlaceID(t *testing.T) {
	var v Visit
	assert.False(t, v.HasPlaceID())

	empty := ""
	v.PlaceID = &empty
	assert.False(t, v.HasPlaceID())

	id := "ChIJx"
	v.PlaceID = &id
	assert.True(t, v.HasPlaceID())
}
