package fingerprint

import (
	"regexp"
	"strings"
)

const (
	// MethodIndicatorValue means both the indicator phrase and the value
	// pattern matched.
	MethodIndicatorValue = "indicator+value"
	// MethodIndicator means the indicator matched but no value could be
	// parsed. The slot is still assigned, at reduced confidence.
	MethodIndicator = "indicator"
)

// partialFactor scales a slot's base confidence when only the indicator
// matched.
const partialFactor = 0.6

type Slot struct {
	Id             string
	Indicators     []string
	ValuePattern   *regexp.Regexp
	BaseConfidence float64
}

type Match struct {
	SlotId     string
	Confidence float64
	Method     string
	Value      string
}

type Detector struct {
	slots []Slot
}

// Detect classifies text into a semantic slot. An indicator hit without a
// parsable value is never treated as "no match": it yields the slot at
// reduced confidence with the indicator-only method marker.
func (d *Detector) Detect(text string) (Match, bool) {
	lower := strings.ToLower(text)

	var best Match
	found := false

	for _, slot := range d.slots {
		indicator := ""
		for _, candidate := range slot.Indicators {
			if strings.Contains(lower, candidate) {
				indicator = candidate
				break
			}
		}
		if len(indicator) == 0 {
			continue
		}

		match := Match{
			SlotId:     slot.Id,
			Confidence: slot.BaseConfidence * partialFactor,
			Method:     MethodIndicator,
		}

		if slot.ValuePattern != nil {
			if value := slot.ValuePattern.FindString(text); len(value) > 0 {
				match.Confidence = slot.BaseConfidence
				match.Method = MethodIndicatorValue
				match.Value = value
			}
		}

		if !found || match.Confidence > best.Confidence {
			best = match
			found = true
		}
	}

	return best, found
}

func (d *Detector) AddSlot(slot Slot) {
	d.slots = append(d.slots, slot)
}

func NewDetector(slots ...Slot) *Detector {
	if len(slots) == 0 {
		slots = defaultSlots()
	}

	return &Detector{
		slots: slots,
	}
}

func defaultSlots() []Slot {
	return []Slot{
		{
			Id:             "salary",
			Indicators:     []string{"salary", "make a year", "earn", "paid", "compensation"},
			ValuePattern:   regexp.MustCompile(`\$?\d+(?:[.,]\d+)*[kK]?`),
			BaseConfidence: 0.9,
		},
		{
			Id:             "meeting_time",
			Indicators:     []string{"meeting", "appointment", "call at", "scheduled"},
			ValuePattern:   regexp.MustCompile(`(?i)\d{1,2}(?::\d{2})?\s*(?:am|pm)|\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			BaseConfidence: 0.85,
		},
		{
			Id:             "home_location",
			Indicators:     []string{"i live", "moved to", "moving to", "my address", "home is"},
			ValuePattern:   regexp.MustCompile(`(?:in|to|at)\s+([A-Z][A-Za-z .'-]+)`),
			BaseConfidence: 0.85,
		},
		{
			Id:             "employer",
			Indicators:     []string{"i work at", "i work for", "my employer", "my company", "new job at"},
			ValuePattern:   regexp.MustCompile(`(?:at|for)\s+([A-Z][A-Za-z0-9 .'-]+)`),
			BaseConfidence: 0.85,
		},
		{
			Id:             "phone_number",
			Indicators:     []string{"phone number", "my number", "call me"},
			ValuePattern:   regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`),
			BaseConfidence: 0.9,
		},
		{
			Id:             "email_address",
			Indicators:     []string{"email", "e-mail"},
			ValuePattern:   regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
			BaseConfidence: 0.9,
		},
		{
			Id:             "birthday",
			Indicators:     []string{"birthday", "i was born"},
			ValuePattern:   regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(?:/\d{2,4})?`),
			BaseConfidence: 0.9,
		},
		{
			Id:             "deadline",
			Indicators:     []string{"deadline", "due on", "due by", "ship by"},
			ValuePattern:   regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(?:/\d{2,4})?|\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			BaseConfidence: 0.8,
		},
		{
			Id:             "dietary_constraint",
			Indicators:     []string{"allergic to", "allergy to", "intolerant to", "cannot eat", "can't eat"},
			ValuePattern:   regexp.MustCompile(`(?i)(?:to|eat)\s+([a-z][a-z ]+)`),
			BaseConfidence: 0.9,
		},
	}
}
