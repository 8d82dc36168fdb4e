package router

import (
	"sort"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	"github.com/stellarpath/route-engine/internal/domain"
)

func pathSet(routes []domain.Route) []string {
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = strings.Join(r.Path(), ">")
	}
	sort.Strings(paths)
	return paths
}

func TestEnumerateRoutesWithinHopBound(t *testing.T) {
	pairs := []domain.Pair{
		pool(t, "axlm", "busdc", 1, 1),
		pool(t, "busdc", "cdog", 1, 1),
		pool(t, "axlm", "cdog", 1, 1),
	}

	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 2)
	assert.DeepEqual(t, []string{
		"axlm>busdc>cdog",
		"axlm>cdog",
	}, pathSet(routes))

	direct := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 1)
	assert.DeepEqual(t, []string{"axlm>cdog"}, pathSet(direct))
}

func TestEnumerateRoutesDuplicatePools(t *testing.T) {
	// two snapshots of the same pool are distinct pairs, so both routes exist
	pairs := []domain.Pair{
		pool(t, "axlm", "cdog", 1, 1),
		pool(t, "axlm", "cdog", 2, 2),
	}
	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 2)
	assert.Equal(t, 2, len(routes))
}

func TestEnumerateRoutesPairUsedOncePerPath(t *testing.T) {
	// a single pair cannot be traversed twice, so no path doubles back
	pairs := []domain.Pair{
		pool(t, "axlm", "busdc", 1, 1),
	}
	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 4)
	assert.Equal(t, 0, len(routes))
}

func TestEnumerateRoutesAssetsMayRepeat(t *testing.T) {
	// two xlm/usdc snapshots allow xlm > usdc > xlm > dog: the asset repeats,
	// the pairs do not
	pairs := []domain.Pair{
		pool(t, "axlm", "busdc", 1, 1),
		pool(t, "axlm", "busdc", 2, 2),
		pool(t, "axlm", "cdog", 1, 1),
	}
	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 3)
	assert.DeepEqual(t, []string{
		"axlm>busdc>axlm>cdog",
		"axlm>busdc>axlm>cdog",
		"axlm>cdog",
	}, pathSet(routes))
}

func TestEnumerateRoutesNoPairs(t *testing.T) {
	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), nil, 2)
	assert.Equal(t, 0, len(routes))
}

func TestEnumerateRoutesOrderInsensitive(t *testing.T) {
	// the emitted path set does not depend on how the pair list is ordered
	pairs := []domain.Pair{
		pool(t, "axlm", "busdc", 1, 1),
		pool(t, "busdc", "cdog", 1, 1),
		pool(t, "axlm", "cdog", 1, 1),
		pool(t, "axlm", "deur", 1, 1),
		pool(t, "deur", "cdog", 1, 1),
	}
	permuted := []domain.Pair{pairs[4], pairs[2], pairs[0], pairs[3], pairs[1]}

	routes := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 2)
	shuffled := EnumerateRoutes(asset("axlm"), asset("cdog"), permuted, 2)
	assert.DeepEqual(t, pathSet(routes), pathSet(shuffled))
}

func TestEnumerateRoutesDeterministic(t *testing.T) {
	pairs := []domain.Pair{
		pool(t, "axlm", "busdc", 1, 1),
		pool(t, "busdc", "cdog", 1, 1),
		pool(t, "axlm", "cdog", 1, 1),
		pool(t, "axlm", "deur", 1, 1),
		pool(t, "deur", "cdog", 1, 1),
	}
	first := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 2)
	second := EnumerateRoutes(asset("axlm"), asset("cdog"), pairs, 2)
	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.DeepEqual(t, first[i].Path(), second[i].Path())
	}
}
