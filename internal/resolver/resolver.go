// File: internal/resolver/resolver.go
// Description: Matches a goal descriptor to exactly one action in a loaded
// manifest. Resolution is pure and deterministic; ties are never broken
// silently.

package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MLouchini/sitepilot/api/schemas"
	"github.com/MLouchini/sitepilot/internal/config"
)

// ActionNotFoundError reports that resolution found zero or more than one
// eligible action. It carries the candidate ids (possibly empty) so the
// caller can supply a more specific goal.
type ActionNotFoundError struct {
	Goal       string
	Candidates []string
}

func (e *ActionNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no action in the manifest serves goal %q", e.Goal)
	}
	return fmt.Sprintf("goal %q is ambiguous: candidate actions [%s]",
		e.Goal, strings.Join(e.Candidates, ", "))
}

// Resolver matches goals to actions. The reference behavior is explicit id
// matching; the keyword-overlap heuristic for free-text goals is opt-in via
// configuration and never runs when a goal id is supplied.
type Resolver struct {
	cfg config.ResolverConfig
}

// New creates a Resolver with the given resolution policy.
func New(cfg config.ResolverConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the single action eligible for the goal. An action is
// eligible if it declares itself as serving the named goal id, or, when the
// catalog defines exactly one action, if the goal names that action's own id.
// Zero or more than one eligible action fails closed with
// *ActionNotFoundError.
func (r *Resolver) Resolve(m *schemas.Manifest, goal schemas.GoalInstance) (*schemas.Action, error) {
	if goal.ID == "" {
		if r.cfg.KeywordHeuristic {
			return r.resolveByKeywords(m, goal)
		}
		return nil, &ActionNotFoundError{Goal: goal.Description}
	}

	var eligible []int
	for i := range m.Actions {
		a := &m.Actions[i]
		if slices.Contains(a.Goals, goal.ID) {
			eligible = append(eligible, i)
			continue
		}
		// A catalog with a single action also answers to that action's id.
		if len(m.Actions) == 1 && a.ID == goal.ID {
			eligible = append(eligible, i)
		}
	}

	return r.pick(m, goal.ID, eligible)
}

// resolveByKeywords scores each action's description by word overlap with the
// free-text goal and keeps those above the configured threshold. It is still
// subject to the same fail-closed ambiguity rule.
func (r *Resolver) resolveByKeywords(m *schemas.Manifest, goal schemas.GoalInstance) (*schemas.Action, error) {
	words := tokenize(goal.Description)
	if len(words) == 0 {
		return nil, &ActionNotFoundError{Goal: goal.Description}
	}

	var eligible []int
	for i := range m.Actions {
		if keywordOverlap(words, tokenize(m.Actions[i].Description)) >= r.cfg.KeywordThreshold {
			eligible = append(eligible, i)
		}
	}

	return r.pick(m, goal.Description, eligible)
}

func (r *Resolver) pick(m *schemas.Manifest, goal string, eligible []int) (*schemas.Action, error) {
	if len(eligible) == 1 {
		return &m.Actions[eligible[0]], nil
	}
	candidates := make([]string, 0, len(eligible))
	for _, i := range eligible {
		candidates = append(candidates, m.Actions[i].ID)
	}
	return nil, &ActionNotFoundError{Goal: goal, Candidates: candidates}
}

// keywordOverlap is the share of goal words that also occur in the action
// description.
func keywordOverlap(goalWords, actionWords []string) float64 {
	if len(goalWords) == 0 {
		return 0
	}
	set := make(map[string]bool, len(actionWords))
	for _, w := range actionWords {
		set[w] = true
	}
	hits := 0
	for _, w := range goalWords {
		if set[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(goalWords))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
