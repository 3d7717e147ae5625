package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSoftDeleteMarkAndRestore(t *testing.T) {
	var p Phonebook
	assert.False(t, p.IsDeleted())

	at := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	p.MarkDeleted(at)
	assert.True(t, p.IsDeleted())
	assert.Equal(t, at, p.DeletedAt.Time)

	p.Restore()
	assert.False(t, p.IsDeleted())
}
