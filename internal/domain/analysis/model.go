package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/adampierre-jpg/kettlebell-vbt/pkg/metrics"
)

// Arm usage patterns accepted in a Protocol. Anything else degrades to the
// visual-inference instruction instead of failing.
const (
	PatternLeftOnly        = "left-only"
	PatternRightOnly       = "right-only"
	PatternAlternatingSets = "alternating-sets"
	PatternAlternatingReps = "alternating-reps"
	PatternBoth            = "both"
)

// Protocol describes the training parameters the lifter declared for the
// uploaded video. It drives prompt generation and is never persisted.
type Protocol struct {
	Exercise    string  `json:"exercise"`
	Weight      float64 `json:"weight"`
	RepsPerSet  int     `json:"repsPerSet"`
	Interval    float64 `json:"interval"`
	ArmPattern  string  `json:"armPattern"`
	StartingArm string  `json:"startingArm,omitempty"`
}

// requiresStartingArm reports whether the pattern alternates and therefore
// cannot be compiled without a starting arm.
func (p Protocol) requiresStartingArm() bool {
	return p.ArmPattern == PatternAlternatingSets || p.ArmPattern == PatternAlternatingReps
}

var exerciseNames = map[string]string{
	"snatch":      "Kettlebell Snatch",
	"swing":       "Kettlebell Swing",
	"clean":       "Kettlebell Clean",
	"clean-press": "Kettlebell Clean & Press",
	"jerk":        "Kettlebell Jerk",
}

// displayName resolves the exercise code to a human readable label, falling
// back to a generic one for unknown codes.
func displayName(exercise string) string {
	if name, ok := exerciseNames[exercise]; ok {
		return name
	}
	return "Kettlebell Exercise"
}

// Rep is one repetition detected by the model. Values are trusted as
// reported; the normalizer only fills gaps, it does not re-derive them.
type Rep struct {
	RepNumber     int     `json:"repNumber"`
	Arm           string  `json:"arm"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Duration      float64 `json:"duration"`
	VelocityScore float64 `json:"velocityScore"`
}

// Result is the normalized per-set outcome returned to callers. Summary
// fields are reconciled against the reps array when the model omits them.
type Result struct {
	Reps            []Rep   `json:"reps"`
	TotalReps       int     `json:"totalReps"`
	AvgDuration     float64 `json:"avgDuration"`
	AvgVelocity     float64 `json:"avgVelocity"`
	FastestRep      int     `json:"fastestRep"`
	SlowestRep      int     `json:"slowestRep"`
	VelocityDropoff float64 `json:"velocityDropoff"`
	CoachingNotes   string  `json:"coachingNotes"`
}

// Request is the analyze payload accepted by the service. Video carries the
// base64 encoded media, optionally as a data URL.
type Request struct {
	Video    string    `json:"video"`
	MimeType string    `json:"mimeType"`
	Protocol *Protocol `json:"protocol"`
}

// Response wraps the normalized result with request metadata.
type Response struct {
	ID string `json:"id"`
	Result
	DurationMs int64               `json:"durationMs,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
	Cached     bool                `json:"cached,omitempty"`
}

// Record is a completed analysis kept in history storage.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Exercise  string    `json:"exercise"`
	Weight    float64   `json:"weight"`
	Result    Result    `json:"result"`
}

// Config carries the runtime knobs for the analysis domain.
type Config struct {
	Model         string
	Temperature   float32
	JSONHint      bool
	MaxVideoBytes int64
	CacheTTL      time.Duration
	HistoryLimit  int
}
