package graphviz

import (
	"parcel-network-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDOT(t *testing.T) {
	b, err := MarshalDOT(domain.BuildGraph(), "iberia")
	require.NoError(t, err)

	out := string(b)
	assert.True(t, strings.HasPrefix(out, "strict graph iberia {"), out)
	for _, c := range domain.BuildGraph().Cities() {
		assert.Contains(t, out, string(c))
	}
	assert.Regexp(t, `label="?621"?`, out)
	assert.Equal(t, 13, strings.Count(out, " -- "))
}
