package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCountMarshal(t *testing.T) {
	data, err := json.Marshal(TypeCount{Type: "cafe", Count: 12})
	require.NoError(t, err)
	assert.JSONEq(t, `["cafe", 12]`, string(data))
}

func TestTypeCountUnmarshal(t *testing.T) {
	var tc TypeCount
	require.NoError(t, json.Unmarshal([]byte(`["park", 3]`), &tc))
	assert.Equal(t, TypeCount{Type: "park", Count: 3}, tc)

	assert.Error(t, json.Unmarshal([]byte(`{"type": "park"}`), &tc))
	assert.Error(t, json.Unmarshal([]byte(`[3, "park"]`), &tc))
}
