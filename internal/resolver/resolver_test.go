package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/config"
	"github.com/MLouchini/sitepilot/internal/resolver"
)

func flightManifest() *schemas.Manifest {
	return &schemas.Manifest{
		Site: "example-travel",
		Goals: []schemas.Goal{
			{ID: "book_flight", Description: "Find a flight that fits the traveler's dates and budget"},
		},
		Actions: []schemas.Action{
			{
				ID:          "search_flights",
				Description: "Search for one-way or round-trip flights between two airports",
				Goals:       []string{"book_flight"},
			},
		},
	}
}

func TestResolver_Resolve_ByGoalID(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{})
	action, err := r.Resolve(flightManifest(), schemas.GoalInstance{ID: "book_flight"})
	require.NoError(t, err)
	assert.Equal(t, "search_flights", action.ID)
}

func TestResolver_Resolve_SingleActionAnswersToOwnID(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{})
	action, err := r.Resolve(flightManifest(), schemas.GoalInstance{ID: "search_flights"})
	require.NoError(t, err)
	assert.Equal(t, "search_flights", action.ID)
}

func TestResolver_Resolve_OwnIDDoesNotApplyToMultiActionCatalogs(t *testing.T) {
	t.Parallel()

	m := flightManifest()
	m.Actions = append(m.Actions, schemas.Action{
		ID:          "track_prices",
		Description: "Watch a route for fare changes",
		Goals:       []string{"book_flight"},
	})

	r := resolver.New(config.ResolverConfig{})
	_, err := r.Resolve(m, schemas.GoalInstance{ID: "search_flights"})

	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Empty(t, nfe.Candidates)
}

func TestResolver_Resolve_NoEligibleAction(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{})
	action, err := r.Resolve(flightManifest(), schemas.GoalInstance{ID: "rent_car"})
	assert.Nil(t, action)

	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "rent_car", nfe.Goal)
	assert.Empty(t, nfe.Candidates)
}

func TestResolver_Resolve_AmbiguousGoalFailsClosed(t *testing.T) {
	t.Parallel()

	m := flightManifest()
	m.Actions = append(m.Actions, schemas.Action{
		ID:          "search_flights_flexible",
		Description: "Search flights with flexible dates",
		Goals:       []string{"book_flight"},
	})

	r := resolver.New(config.ResolverConfig{})
	action, err := r.Resolve(m, schemas.GoalInstance{ID: "book_flight"})
	assert.Nil(t, action, "ties must never be broken silently")

	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, []string{"search_flights", "search_flights_flexible"}, nfe.Candidates)
	assert.Contains(t, nfe.Error(), "ambiguous")
}

func TestResolver_Resolve_FreeTextWithoutHeuristic(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{KeywordHeuristic: false})
	_, err := r.Resolve(flightManifest(), schemas.GoalInstance{
		Description: "search for round-trip flights between two airports",
	})

	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe), "free-text goals need the opt-in heuristic")
}

func TestResolver_Resolve_KeywordHeuristic(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{
		KeywordHeuristic: true,
		KeywordThreshold: 0.6,
	})

	action, err := r.Resolve(flightManifest(), schemas.GoalInstance{
		Description: "search for round-trip flights between two airports",
	})
	require.NoError(t, err)
	assert.Equal(t, "search_flights", action.ID)

	// Below-threshold overlap fails closed with zero candidates.
	_, err = r.Resolve(flightManifest(), schemas.GoalInstance{
		Description: "reserve a hotel room downtown",
	})
	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Empty(t, nfe.Candidates)
}

func TestResolver_Resolve_KeywordHeuristicEmptyGoal(t *testing.T) {
	t.Parallel()

	r := resolver.New(config.ResolverConfig{KeywordHeuristic: true, KeywordThreshold: 0.5})
	_, err := r.Resolve(flightManifest(), schemas.GoalInstance{Description: "   ...  "})

	var nfe *resolver.ActionNotFoundError
	require.True(t, errors.As(err, &nfe))
}
