package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlatform(t *testing.T) {
	for _, p := range []string{"facebook", "twitter", "instagram", "linkedin"} {
		assert.True(t, IsPlatform(p), p)
	}
	for _, p := range []string{"tiktok", "Facebook", ""} {
		assert.False(t, IsPlatform(p), p)
	}
}

func TestBaseModel_BeforeCreate(t *testing.T) {
	m := &BaseModel{}
	assert.NoError(t, m.BeforeCreate(nil))
	assert.Len(t, m.ID, 36)

	fixed := &BaseModel{ID: "keep-me"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "keep-me", fixed.ID)
}
