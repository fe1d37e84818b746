package shell

import (
	"bytes"
	"context"
	"errors"
	"parcel-network-service/internal/adapters/repositories"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedInput replays canned answers and then reports exhaustion.
type scriptedInput struct {
	lines   []string
	prompts []string
}

func (s *scriptedInput) ReadLine(prompt string) (string, bool) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", false
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, true
}

func newShell(t *testing.T, store *repositories.MemoryRegistryStore, lines ...string) (*Shell, *bytes.Buffer) {
	t.Helper()

	planner, err := services.NewRoutePlanner(domain.BuildGraph())
	require.NoError(t, err)
	reg, err := services.NewPackageRegistry(context.Background(), store, planner)
	require.NoError(t, err)

	var out bytes.Buffer
	return &Shell{In: &scriptedInput{lines: lines}, Out: &out, Planner: planner, Registry: reg}, &out
}

func TestReadCitiesNormalizes(t *testing.T) {
	o, d, def := ReadCities(&scriptedInput{lines: []string{"  porto ", "SEVILLA"}})
	assert.Equal(t, domain.City("Porto"), o)
	assert.Equal(t, domain.City("Sevilla"), d)
	assert.False(t, def)
}

func TestReadCitiesFallsBackToDefaults(t *testing.T) {
	o, d, def := ReadCities(&scriptedInput{})
	assert.Equal(t, DefaultOrigin, o)
	assert.Equal(t, DefaultDestination, d)
	assert.True(t, def)

	o, d, def = ReadCities(&scriptedInput{lines: []string{"Porto"}})
	assert.Equal(t, DefaultOrigin, o)
	assert.Equal(t, DefaultDestination, d)
	assert.True(t, def)
}

func TestLineInput(t *testing.T) {
	var out bytes.Buffer
	in := NewLineInput(strings.NewReader("madrid\n"), &out)

	line, ok := in.ReadLine("Origin city: ")
	assert.True(t, ok)
	assert.Equal(t, "madrid", line)
	assert.Equal(t, "Origin city: ", out.String())

	_, ok = in.ReadLine("Destination city: ")
	assert.False(t, ok)
}

func TestShellTravelTimeAndRoute(t *testing.T) {
	sh, out := newShell(t, repositories.NewMemoryRegistryStore(),
		"1", "Madrid", "Bilbao",
		"1", "Valencia", "Bilbao",
		"2", "porto", "sevilla",
		"2", "Madrid", "Atlantis",
		"8")

	require.NoError(t, sh.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Distance between Madrid and Bilbao is 400 km.")
	assert.Contains(t, s, "Estimated delivery time is 5.00 hours (at 80 km/h).")
	assert.Contains(t, s, "No direct connection data between Valencia and Bilbao.")
	assert.Contains(t, s, "Shortest route between Porto and Sevilla: Porto -> Lisboa -> Sevilla")
	assert.Contains(t, s, "Total distance: 773 km")
	assert.Contains(t, s, "No route exists between Madrid and Atlantis.")
	assert.Contains(t, s, "Exiting. Bye!")
}

func TestShellPackageFlow(t *testing.T) {
	store := repositories.NewMemoryRegistryStore()
	sh, out := newShell(t, store,
		"6",
		"4", "madrid", "barcelona",
		"5", "pkg-00001",
		"6",
		"7", "PKG-00001",
		"5", "PKG-00001",
		"8")

	require.NoError(t, sh.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "No packages registered.")
	assert.Contains(t, s, "Package registered with code: PKG-00001")
	assert.Contains(t, s, "Route: Madrid -> Barcelona")
	assert.Contains(t, s, "Status: in transit")
	assert.Contains(t, s, "Package PKG-00001 removed.")
	assert.Contains(t, s, "No package found with code PKG-00001.")

	saved, _ := store.Snapshot()
	assert.Empty(t, saved)
}

func TestShellContinuesAfterErrors(t *testing.T) {
	store := repositories.NewMemoryRegistryStore()
	sh, out := newShell(t, store,
		"9",
		"4", "Madrid", "Barcelona",
		"3",
		"8")
	store.FailSave = errors.New("disk full")

	require.NoError(t, sh.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Invalid option, please try again.")
	assert.Contains(t, s, "Error: ")
	assert.Contains(t, s, "disk full")
	assert.Contains(t, s, "strict graph network {")
	assert.Zero(t, sh.Registry.Len())
}

func TestShellNonInteractiveUsesDefaults(t *testing.T) {
	sh, out := newShell(t, repositories.NewMemoryRegistryStore(), "2")

	require.NoError(t, sh.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Input unavailable, using defaults Madrid -> Barcelona.")
	assert.Contains(t, s, "Shortest route between Madrid and Barcelona: Madrid -> Barcelona")
	assert.Contains(t, s, "No more input. Bye!")
}

func TestFormatKm(t *testing.T) {
	assert.Equal(t, "621", formatKm(621))
	assert.Equal(t, "4.5", formatKm(4.5))
	assert.Equal(t, "80", formatKm(80))
}
