package models_test

import (
	"testing"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	t.Parallel()
	rect := models.Rect{X: 1, Y: 2, Width: 4, Height: 6}

	tests := []struct {
		name  string
		point models.Point
		want  bool
	}{
		{"interior point", models.Point{X: 3, Y: 5}, true},
		{"minimum corner", models.Point{X: 1, Y: 2}, true},
		{"maximum corner", models.Point{X: 5, Y: 8}, true},
		{"on left edge", models.Point{X: 1, Y: 4}, true},
		{"on top edge", models.Point{X: 3, Y: 8}, true},
		{"left of rect", models.Point{X: 0.99, Y: 5}, false},
		{"right of rect", models.Point{X: 5.01, Y: 5}, false},
		{"below rect", models.Point{X: 3, Y: 1.99}, false},
		{"above rect", models.Point{X: 3, Y: 8.01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rect.Contains(tt.point))
		})
	}
}

func TestRect_Contains_Degenerate(t *testing.T) {
	t.Parallel()

	// A zero-size rectangle still contains its own origin.
	rect := models.Rect{X: 2, Y: 3}

	assert.True(t, rect.Contains(models.Point{X: 2, Y: 3}))
	assert.False(t, rect.Contains(models.Point{X: 2.0001, Y: 3}))
}

func TestRect_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, models.Rect{}.IsZero())
	assert.False(t, models.Rect{Width: 1}.IsZero())
	assert.False(t, models.Rect{X: 1}.IsZero())
}
