package grantview_test

import (
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_Path(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", grantview.UploadRoute().Path())
	assert.Equal(t, "/results/ev_123", grantview.ResultsRoute("ev_123").Path())
	assert.Equal(t, "/settings", grantview.SettingsRoute().Path())
	assert.Equal(t, "/results/a%2Fb", grantview.ResultsRoute("a/b").Path())
}

func TestParseRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want grantview.Route
	}{
		{"", grantview.UploadRoute()},
		{"/", grantview.UploadRoute()},
		{"/settings", grantview.SettingsRoute()},
		{"settings/", grantview.SettingsRoute()},
		{"/results/ev_123", grantview.ResultsRoute("ev_123")},
		{"/results/a%2Fb", grantview.ResultsRoute("a/b")},
	}

	for _, tt := range tests {
		got, err := grantview.ParseRoute(tt.path)
		require.NoError(t, err, "path %q", tt.path)
		assert.Equal(t, tt.want, got, "path %q", tt.path)
	}
}

func TestParseRoute_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, r := range []grantview.Route{
		grantview.UploadRoute(),
		grantview.SettingsRoute(),
		grantview.ResultsRoute("665f1c2e9b1e8a0012345678"),
	} {
		got, err := grantview.ParseRoute(r.Path())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestParseRoute_Invalid(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/results", "/results/", "/results/a/b", "/history", "/settings/x"} {
		_, err := grantview.ParseRoute(path)
		assert.Error(t, err, "path %q", path)
	}
}
