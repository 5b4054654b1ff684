package fingerprint

import (
	"strings"
	"time"

	"github.com/w-h-a/recall/util/extract"
)

type Winner int

const (
	NewWins Winner = iota
	OldWins
)

// Reconcile decides which of two statements about the same slot stays
// current. The newer statement wins by default. When both statements
// carry explicit, parseable temporal anchors, the later anchor wins —
// unless the new statement contains a correction marker, which always
// settles the conflict in its favor.
func Reconcile(oldText string, newText string) Winner {
	if extract.HasCorrectionMarker(newText) {
		return NewWins
	}

	oldAnchor, oldOk := parseAnchor(extract.Dates(oldText))
	newAnchor, newOk := parseAnchor(extract.Dates(newText))

	if oldOk && newOk && oldAnchor.After(newAnchor) {
		return OldWins
	}

	return NewWins
}

var anchorLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

func parseAnchor(anchors []string) (time.Time, bool) {
	for _, anchor := range anchors {
		cleaned := strings.TrimSpace(anchor)
		for _, layout := range anchorLayouts {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
