package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMealDisplayName(t *testing.T) {
	assert.Equal(t, "Pasta", CreateMealRequest{Title: "Pasta"}.DisplayName())
	assert.Equal(t, "Pasta", CreateMealRequest{Name: "Pasta"}.DisplayName())
	// Title wins when both are sent
	assert.Equal(t, "New", CreateMealRequest{Title: "New", Name: "Old"}.DisplayName())
	assert.Equal(t, "", CreateMealRequest{}.DisplayName())
}

func TestUpdateMealDisplayName(t *testing.T) {
	title, name, empty := "New", "Old", ""

	got, ok := UpdateMealRequest{Title: &title, Name: &name}.DisplayName()
	assert.True(t, ok)
	assert.Equal(t, "New", got)

	got, ok = UpdateMealRequest{Name: &name}.DisplayName()
	assert.True(t, ok)
	assert.Equal(t, "Old", got)

	// Empty strings do not count as sent
	_, ok = UpdateMealRequest{Title: &empty}.DisplayName()
	assert.False(t, ok)
	_, ok = UpdateMealRequest{}.DisplayName()
	assert.False(t, ok)
}
