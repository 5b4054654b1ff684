package retriever

import "github.com/w-h-a/recall/storer"

type Result struct {
	Records   []storer.Record
	Telemetry Telemetry
}

// Telemetry describes what the retriever saw and chose, for
// observability: how many candidates matched, which ids were admitted,
// and the rank each selected record held.
type Telemetry struct {
	CandidateCount int
	SelectedIds    []string
	Ranks          map[string]int
	TokensUsed     int
	Categories     []string
	Fallback       bool
}
