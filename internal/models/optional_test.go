package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentNullAndValue(t *testing.T) {
	var p AccountPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Main","institution":null}`), &p))

	assert.True(t, p.Name.Set)
	assert.Equal(t, "Main", p.Name.Value)
	assert.False(t, p.Balance.Set, "absent key must stay unset")
	assert.True(t, p.Institution.IsNull())
	assert.Nil(t, p.Institution.Ptr())
}

func TestOptional_EmptyStringIsNotNull(t *testing.T) {
	var p AccountPatch
	require.NoError(t, json.Unmarshal([]byte(`{"institution":""}`), &p))

	assert.True(t, p.Institution.Set)
	assert.False(t, p.Institution.IsNull())
	require.NotNil(t, p.Institution.Ptr())
	assert.Equal(t, "", *p.Institution.Ptr())
}

func TestOptional_TypeMismatch(t *testing.T) {
	var p AccountPatch
	err := json.Unmarshal([]byte(`{"balance":"lots"}`), &p)
	assert.Error(t, err)
}
