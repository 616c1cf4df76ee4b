package location_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/location"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_ReplaysPath(t *testing.T) {
	t.Parallel()

	path := []models.Coordinate{
		{Latitude: 50.4501, Longitude: 30.5234},
		{Latitude: 50.4510, Longitude: 30.5236},
		{Latitude: 50.4520, Longitude: 30.5238},
	}
	sim := location.NewSimulator(path, time.Millisecond, slog.Default())

	go sim.Run(t.Context())

	// Access is granted before the first fix arrives.
	select {
	case status := <-sim.AuthChanges():
		assert.Equal(t, location.AuthAlways, status)
		assert.True(t, status.Authorized())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for authorization status")
	}

	var fixes []models.Position
	for fix := range sim.Updates() {
		assert.False(t, fix.Timestamp.IsZero())
		fixes = append(fixes, fix)
	}

	require.Len(t, fixes, len(path))
	for i, fix := range fixes {
		assert.Equal(t, path[i], fix.Coordinate)
	}
}

func TestSimulator_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	// A long interval guarantees cancellation lands before the first fix.
	path := []models.Coordinate{{Latitude: 50.4501, Longitude: 30.5234}}
	sim := location.NewSimulator(path, time.Hour, slog.Default())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	<-sim.AuthChanges()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after context cancellation")
	}

	// Both channels are closed once the run ends.
	_, open := <-sim.Updates()
	assert.False(t, open)
}

func TestAuthStatus_Authorized(t *testing.T) {
	t.Parallel()

	assert.False(t, location.AuthNotDetermined.Authorized())
	assert.False(t, location.AuthDenied.Authorized())
	assert.True(t, location.AuthWhenInUse.Authorized())
	assert.True(t, location.AuthAlways.Authorized())
}
