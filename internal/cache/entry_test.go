package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidityWindow(t *testing.T) {
	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	e := &Entry{EndStamp: base.Add(time.Hour).Unix()}

	assert.True(t, e.IsValid(base))
	assert.True(t, e.IsValid(base.Add(30*time.Minute)))
	assert.False(t, e.IsValid(base.Add(2*time.Hour)))
}

func TestEntryExpireStampUsedWithoutEnd(t *testing.T) {
	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	e := &Entry{ExpireStamp: base.Add(12 * time.Hour).Unix()}

	assert.True(t, e.IsValid(base))
	assert.False(t, e.IsValid(base.Add(13*time.Hour)))
}

func TestEntryWithoutBoundsNeverValid(t *testing.T) {
	e := &Entry{Title: "unbounded"}
	assert.False(t, e.IsValid(time.Now()))
}

func TestNilEntryNeverValid(t *testing.T) {
	var e *Entry
	assert.False(t, e.IsValid(time.Now()))
}
