package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStudent_DerivesNameInput(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStudent("  Juan DELA Cruz\t", created)

	assert.Equal(t, "Juan DELA Cruz", s.Name)
	assert.Equal(t, "juan dela cruz", s.NameInput)
	assert.Equal(t, created, s.CreatedAt)
	assert.Empty(t, s.ID)

	s.Rename("Maria")
	assert.Equal(t, "Maria", s.Name)
	assert.Equal(t, "maria", s.NameInput)
}
