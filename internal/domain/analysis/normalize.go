package analysis

import (
	"encoding/json"
	"strings"
)

// notesPreviewLen bounds how much raw model output is echoed back in the
// diagnostic coaching notes when parsing fails.
const notesPreviewLen = 280

type summaryWire struct {
	TotalReps       *int     `json:"totalReps"`
	AvgDuration     *float64 `json:"avgDuration"`
	AvgVelocity     *float64 `json:"avgVelocity"`
	FastestRep      *int     `json:"fastestRep"`
	SlowestRep      *int     `json:"slowestRep"`
	VelocityDropoff *float64 `json:"velocityDropoff"`
}

type resultWire struct {
	Reps          []Rep        `json:"reps"`
	Summary       *summaryWire `json:"summary"`
	CoachingNotes string       `json:"coachingNotes"`
}

// NormalizeResponse converts raw model text into a well formed Result. It is
// total: malformed input produces a degraded result with diagnostic notes,
// never an error. Reported summary values win over derived ones.
func NormalizeResponse(raw string) Result {
	payload := stripFences(raw)
	if extracted, ok := extractObject(payload); ok {
		payload = extracted
	}

	var wire resultWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return fallbackResult(raw)
	}

	reps := wire.Reps
	if reps == nil {
		reps = []Rep{}
	}

	res := Result{
		Reps:          reps,
		TotalReps:     len(reps),
		AvgDuration:   averageDuration(reps),
		AvgVelocity:   averageVelocity(reps),
		CoachingNotes: strings.TrimSpace(wire.CoachingNotes),
	}
	if len(reps) > 0 {
		// Reported-or-default policy: rep 1 and the last index stand in
		// when the model omits fastest/slowest. Not a min/max search.
		res.FastestRep = 1
		res.SlowestRep = len(reps)
	}
	res.VelocityDropoff = velocityDropoff(reps)

	if s := wire.Summary; s != nil {
		if s.TotalReps != nil {
			res.TotalReps = *s.TotalReps
		}
		if s.AvgDuration != nil {
			res.AvgDuration = *s.AvgDuration
		}
		if s.AvgVelocity != nil {
			res.AvgVelocity = *s.AvgVelocity
		}
		if s.FastestRep != nil {
			res.FastestRep = *s.FastestRep
		}
		if s.SlowestRep != nil {
			res.SlowestRep = *s.SlowestRep
		}
		if s.VelocityDropoff != nil {
			res.VelocityDropoff = *s.VelocityDropoff
		}
	}

	return res
}

// stripFences removes a leading markdown code fence (with or without a
// language tag) and a trailing one, if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if idx := strings.Index(s, "\n"); idx != -1 {
			// The remainder of the fence line is a language tag.
			if tag := strings.TrimSpace(s[:idx]); tag == "" || !strings.ContainsAny(tag, "{}") {
				s = s[idx+1:]
			}
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractObject returns the widest brace-delimited substring. Models
// sometimes wrap the payload in commentary despite instructions; the greedy
// first-{ to last-} span recovers it.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func fallbackResult(raw string) Result {
	return Result{
		Reps:          []Rep{},
		CoachingNotes: "Automatic analysis failed: the model response could not be parsed. Raw output: " + truncate(strings.TrimSpace(raw), notesPreviewLen),
	}
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	if limit <= 3 {
		return text[:limit]
	}
	return strings.TrimSpace(text[:limit-3]) + "..."
}
