package util

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_SortableAndUnique(t *testing.T) {
	prev := ""
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewULID()
		assert.Len(t, id, 26)
		assert.True(t, IsULID(id))
		assert.False(t, seen[id])
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.False(t, IsULID("42"))
	assert.False(t, IsULID(""))
}

func TestNullStringHelpers(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))
	assert.Equal(t, "", NullStringToString(sql.NullString{}))
	assert.Equal(t, "x", NullStringToString(sql.NullString{String: "x", Valid: true}))
}
