package main

import (
	"bytes"
	"parcel-network-service/internal/api/dto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PARCEL_CONFIG", "")
	t.Setenv("REGISTRY_BACKEND", "json")
	t.Setenv("REGISTRY_PATH", filepath.Join(t.TempDir(), "registry.json"))
	t.Setenv("ROUTE_CACHE", "none")
	t.Setenv("LOG_LEVEL", "disabled")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(strings.NewReader(stdin), &out).Run(append([]string{"parcelctl"}, args...))
	return out.String(), err
}

func TestRouteCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "route", "--from", "porto", "--to", "sevilla")
	require.NoError(t, err)
	assert.Equal(t, "Porto -> Lisboa -> Sevilla (773 km)\n", out)

	_, err = run(t, "", "route", "--from", "Madrid", "--to", "Atlantis")
	assert.Error(t, err)
}

func TestTravelTimeCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "travel-time", "--from", "Madrid", "--to", "Bilbao", "--speed", "100")
	require.NoError(t, err)
	assert.Equal(t, "400 km at 100 km/h: 4.00 hours\n", out)

	out, err = run(t, "", "--json", "travel-time", "--from", "Madrid", "--to", "Bilbao")
	require.NoError(t, err)
	var est dto.TravelTimeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 5.0, est.Hours)
	assert.Contains(t, out, `"distance_km"`)

	for _, speed := range []string{"NaN", "Inf", "1e-320"} {
		_, err = run(t, "", "travel-time", "--from", "Madrid", "--to", "Bilbao", "--speed", speed)
		assert.Error(t, err, "speed %s", speed)
	}
}

func TestRouteCommandJSON(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "--json", "route", "--from", "porto", "--to", "sevilla")
	require.NoError(t, err)
	var route dto.RouteResponse
	require.NoError(t, json.Unmarshal([]byte(out), &route))
	assert.Equal(t, []string{"Porto", "Lisboa", "Sevilla"}, route.Route)
	assert.Equal(t, 773.0, route.DistanceKm)
}

func TestPackageCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "create", "--from", "Madrid", "--to", "Barcelona")
	require.NoError(t, err)
	assert.Equal(t, "PKG-00001\n", out)

	out, err = run(t, "", "track", "pkg-00001")
	require.NoError(t, err)
	assert.Contains(t, out, "Madrid -> Barcelona")
	assert.Contains(t, out, "in transit")

	out, err = run(t, "", "--json", "list")
	require.NoError(t, err)
	var list dto.ListPackagesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Packages, 1)
	assert.Equal(t, "PKG-00001", list.Packages[0].Code)
	assert.Equal(t, 621.0, list.Packages[0].DistanceTotal)

	out, err = run(t, "", "--json", "track", "PKG-00001")
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, "PKG-00001", fields["code"])
	assert.Equal(t, 621.0, fields["distance_total"])
	assert.Equal(t, "in transit", fields["status"])
	assert.NotContains(t, fields, "DistanceTotal")

	out, err = run(t, "", "remove", "PKG-00001")
	require.NoError(t, err)
	assert.Equal(t, "removed PKG-00001\n", out)

	_, err = run(t, "", "track", "PKG-00001")
	assert.Error(t, err)
}

func TestGraphCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "graph")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "strict graph iberia {"))
}

func TestShellCommandExits(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "2\nMadrid\nSevilla\n8\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Shortest route between Madrid and Sevilla: Madrid -> Sevilla")
	assert.Contains(t, out, "Exiting. Bye!")
}
