package category

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Default is the category assigned when nothing scores above the floor.
const Default = "general"

type Definition struct {
	Name         string
	Keywords     []string
	Patterns     []*regexp.Regexp
	Topics       []string
	Priority     float64
	TokenCeiling int
}

// Registry holds the category taxonomy: a fixed default set plus
// dynamically added categories. Every mutation bumps the version so
// cached routing decisions can be invalidated.
type Registry struct {
	defs    map[string]Definition
	order   []string
	version uint64
	mtx     sync.RWMutex
}

func (r *Registry) Add(def Definition) error {
	name := strings.TrimSpace(strings.ToLower(def.Name))
	if len(name) == 0 {
		return fmt.Errorf("category name is required")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	def.Name = name
	if _, exists := r.defs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.defs[name] = def
	r.version++

	return nil
}

func (r *Registry) Get(name string) (Definition, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) List() []Definition {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return append([]string(nil), r.order...)
}

func (r *Registry) Version() uint64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.version
}

func NewRegistry() *Registry {
	r := &Registry{
		defs: map[string]Definition{},
	}

	for _, def := range defaults() {
		r.order = append(r.order, def.Name)
		r.defs[def.Name] = def
	}

	return r
}

func defaults() []Definition {
	return []Definition{
		{
			Name:     "personal",
			Keywords: []string{"name", "birthday", "age", "live", "home", "family", "hobby", "pet"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bmy (name|birthday|home|address|family)\b`),
			},
			Topics:       []string{"identity", "biography", "background"},
			Priority:     0.6,
			TokenCeiling: 4000,
		},
		{
			Name:     "work",
			Keywords: []string{"job", "work", "salary", "boss", "office", "project", "career", "promotion", "colleague", "company"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(salary|promoted|hired|fired|interview)\b`),
			},
			Topics:       []string{"employment", "business", "profession"},
			Priority:     0.7,
			TokenCeiling: 4000,
		},
		{
			Name:     "preferences",
			Keywords: []string{"like", "love", "hate", "prefer", "favorite", "enjoy", "dislike", "want"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(favorite|prefers?|i (like|love|hate|enjoy))\b`),
			},
			Topics:       []string{"taste", "opinion", "food", "music", "style"},
			Priority:     0.5,
			TokenCeiling: 3000,
		},
		{
			Name:     "health",
			Keywords: []string{"doctor", "allergy", "allergic", "medication", "diet", "exercise", "sleep", "injury", "symptom"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(allerg\w+|diagnos\w+|prescri\w+)\b`),
			},
			Topics:       []string{"medical", "fitness", "wellness"},
			Priority:     0.9,
			TokenCeiling: 3000,
		},
		{
			Name:     "finance",
			Keywords: []string{"money", "price", "cost", "budget", "invest", "loan", "rent", "savings", "plan", "pay"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\$\d`),
				regexp.MustCompile(`(?i)\b\d+ ?(dollars|euros|usd)\b`),
			},
			Topics:       []string{"financial", "payment", "pricing"},
			Priority:     0.7,
			TokenCeiling: 3000,
		},
		{
			Name:     "relationships",
			Keywords: []string{"friend", "brother", "sister", "mother", "father", "wife", "husband", "partner", "colleague", "daughter", "son"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bmy (friend|brother|sister|mother|father|wife|husband|partner|son|daughter)\b`),
			},
			Topics:       []string{"people", "social", "family"},
			Priority:     0.6,
			TokenCeiling: 3000,
		},
		{
			Name:     "schedule",
			Keywords: []string{"meeting", "appointment", "deadline", "tomorrow", "tonight", "schedule", "calendar", "event", "trip"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})? ?(am|pm)\b`),
				regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			},
			Topics:       []string{"time", "planning", "events"},
			Priority:     0.8,
			TokenCeiling: 3000,
		},
		{
			Name:     "technical",
			Keywords: []string{"code", "server", "database", "password", "api", "bug", "deploy", "software", "computer", "app"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(github|docker|postgres|python|golang|javascript)\b`),
			},
			Topics:       []string{"programming", "infrastructure", "tools"},
			Priority:     0.5,
			TokenCeiling: 4000,
		},
		{
			Name:         Default,
			Keywords:     []string{},
			Topics:       []string{},
			Priority:     0.1,
			TokenCeiling: 5000,
		},
	}
}
