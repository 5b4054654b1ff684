package category

import (
	"math"
	"sort"
)

// Classifier assigns a category to a piece of text. The heuristic Router
// below is one strategy; callers depend only on this interface so the
// scoring approach can be swapped without touching call sites.
type Classifier interface {
	Classify(text string) (Assignment, error)
}

type Assignment struct {
	Category   string
	Confidence float64
	Scores     map[string]float64
}

// Route is a classification plus the cross-category fallback decision.
// The same routing applies to facts on the write path and queries on the
// read path.
type Route struct {
	Primary    string
	Confidence float64
	Categories []string
	Fallback   bool
}

type Router struct {
	options Options
}

func (r *Router) Classify(text string) (Assignment, error) {
	// Routing is content-based: strip recall-style phrasing so "do you
	// remember X" routes on the topic of X.
	stripped := StripRecallPhrasing(text)
	topics := Topics(stripped)

	scores := map[string]float64{}

	for _, def := range r.options.Registry.List() {
		scores[def.Name] = r.score(stripped, topics, def)
	}

	top, runner := topTwo(scores)

	assignment := Assignment{
		Category: top.name,
		Scores:   scores,
	}

	if top.score < r.options.ScoreFloor {
		// RoutingFailure: nothing scored above the floor.
		assignment.Category = Default
		assignment.Confidence = 0
		return assignment, nil
	}

	base := 1 - math.Exp(-1.2*top.score)
	sep := 0.0
	if top.score > 0 {
		sep = (top.score - runner.score) / top.score
	}

	assignment.Confidence = base * (0.5 + 0.5*sep)

	return assignment, nil
}

// Route classifies text and, when confidence falls below the floor,
// widens the search to every category whose vocabulary overlaps the
// text's topic keywords.
func (r *Router) Route(text string) Route {
	assignment, _ := r.Classify(text)

	route := Route{
		Primary:    assignment.Category,
		Confidence: assignment.Confidence,
		Categories: []string{assignment.Category},
	}

	if assignment.Confidence >= r.options.ConfidenceFloor {
		return route
	}

	route.Fallback = true

	topics := Topics(StripRecallPhrasing(text))

	for _, def := range r.options.Registry.List() {
		if def.Name == assignment.Category {
			continue
		}
		if overlaps(topics, def.Keywords) || overlaps(topics, def.Topics) || assignment.Scores[def.Name] > 0 {
			route.Categories = append(route.Categories, def.Name)
		}
	}

	return route
}

func (r *Router) Registry() *Registry {
	return r.options.Registry
}

func (r *Router) ConfidenceFloor() float64 {
	return r.options.ConfidenceFloor
}

func (r *Router) score(text string, topics []string, def Definition) float64 {
	w := r.options.Weights

	var score float64

	if hits := keywordHits(text, def.Keywords); hits > 0 {
		score += w.Keyword * math.Min(1, float64(hits)/2)
	}

	patternHits := 0
	for _, pattern := range def.Patterns {
		if pattern.MatchString(text) {
			patternHits++
		}
	}
	if patternHits > 0 {
		score += w.Pattern * math.Min(1, float64(patternHits))
	}

	if n := overlapCount(topics, def.Topics); n > 0 {
		score += w.Topic * math.Min(1, float64(n))
	}

	score += w.Priority * def.Priority

	return score
}

type scored struct {
	name  string
	score float64
}

func topTwo(scores map[string]float64) (scored, scored) {
	ranked := make([]scored, 0, len(scores))
	for name, score := range scores {
		ranked = append(ranked, scored{name, score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) == 0 {
		return scored{name: Default}, scored{}
	}
	if len(ranked) == 1 {
		return ranked[0], scored{}
	}
	return ranked[0], ranked[1]
}

func NewRouter(opts ...Option) *Router {
	options := NewOptions(opts...)

	return &Router{
		options: options,
	}
}
