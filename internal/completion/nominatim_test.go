package completion_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/wayfinder/internal/completion"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newNominatimForTest(client *mockHTTPClient) *completion.NominatimProvider {
	return completion.NewNominatimProviderWithClient(
		client,
		"",
		rate.NewLimiter(rate.Inf, 1),
		slog.Default(),
	)
}

func TestNominatimProvider_Complete(t *testing.T) {
	ctx := t.Context()

	t.Run("maps search hits to suggestions", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "independence", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "5", req.URL.Query().Get("limit"))

				responseBody := `[
					{"display_name":"Maidan Nezalezhnosti, Kyiv, Ukraine","lat":"50.4501","lon":"30.5234"},
					{"display_name":"Independence","lat":"39.0911","lon":"-94.4155"}
				]`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := newNominatimForTest(mockClient)
		suggestions, err := provider.Complete(ctx, "independence")

		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "Maidan Nezalezhnosti", suggestions[0].Title)
		assert.Equal(t, "Kyiv, Ukraine", suggestions[0].Subtitle)
		require.NotNil(t, suggestions[0].Location)
		assert.InEpsilon(t, 50.4501, suggestions[0].Location.Latitude, 0.0001)
		assert.InEpsilon(t, 30.5234, suggestions[0].Location.Longitude, 0.0001)
		// A single-part display name has no subtitle.
		assert.Equal(t, "Independence", suggestions[1].Title)
		assert.Empty(t, suggestions[1].Subtitle)
	})

	t.Run("skips hits with invalid coordinates", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `[
					{"display_name":"Broken, Nowhere","lat":"invalid","lon":"30.5234"},
					{"display_name":"Good, Somewhere","lat":"50.4501","lon":"30.5234"}
				]`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := newNominatimForTest(mockClient)
		suggestions, err := provider.Complete(ctx, "somewhere")

		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Good", suggestions[0].Title)
	})

	t.Run("empty fragment skips the provider", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("provider should not be called for an empty fragment")
				return nil, nil
			},
		}

		provider := newNominatimForTest(mockClient)
		suggestions, err := provider.Complete(ctx, "")

		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":"down"}`)),
				}, nil
			},
		}

		provider := newNominatimForTest(mockClient)
		suggestions, err := provider.Complete(ctx, "somewhere")

		require.Error(t, err)
		assert.Nil(t, suggestions)
		assert.Contains(t, err.Error(), "nominatim API returned status 503")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`invalid json`)),
				}, nil
			},
		}

		provider := newNominatimForTest(mockClient)
		suggestions, err := provider.Complete(ctx, "somewhere")

		require.Error(t, err)
		assert.Nil(t, suggestions)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})
}

func TestNominatimProvider_Resolve(t *testing.T) {
	ctx := t.Context()
	provider := newNominatimForTest(&mockHTTPClient{})

	t.Run("returns the captured coordinate", func(t *testing.T) {
		want := models.Coordinate{Latitude: 50.4501, Longitude: 30.5234}

		coords, err := provider.Resolve(ctx, models.Suggestion{Title: "Maidan Nezalezhnosti", Location: &want})

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.Equal(t, want, *coords)
	})

	t.Run("suggestion without a coordinate", func(t *testing.T) {
		coords, err := provider.Resolve(ctx, models.Suggestion{Title: "Nowhere"})

		require.ErrorIs(t, err, completion.ErrNoMatch)
		assert.Nil(t, coords)
	})
}
