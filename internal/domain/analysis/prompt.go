package analysis

import (
	"fmt"
	"strings"
)

// responseShape is the literal reply template embedded in every prompt. The
// normalizer's decoding assumptions depend on the model receiving exactly
// this shape request, so the template is a fixed constant.
const responseShape = `{
  "reps": [
    {"repNumber": 1, "arm": "Left", "startTime": "00:05.2", "endTime": "00:06.4", "duration": 1.2, "velocityScore": 8}
  ],
  "summary": {
    "totalReps": 10,
    "avgDuration": 1.25,
    "avgVelocity": 7.5,
    "fastestRep": 3,
    "slowestRep": 9,
    "velocityDropoff": 12.5
  },
  "coachingNotes": "Two short sentences of coaching feedback."
}`

// BuildPrompt compiles a Protocol into the model instruction text. It is a
// pure function: identical protocols produce byte-identical prompts.
func BuildPrompt(p Protocol) string {
	var b strings.Builder

	b.WriteString("You are an expert kettlebell coach analyzing a velocity-based training video.\n\n")

	b.WriteString("Training protocol:\n")
	fmt.Fprintf(&b, "- Exercise: %s\n", displayName(p.Exercise))
	fmt.Fprintf(&b, "- Kettlebell weight: %s kg\n", formatNumber(p.Weight))
	fmt.Fprintf(&b, "- Reps per set: %d\n", p.RepsPerSet)
	fmt.Fprintf(&b, "- Interval between set starts: %s seconds\n", formatNumber(p.Interval))
	fmt.Fprintf(&b, "- Arm usage: %s\n\n", armPatternRule(p.ArmPattern, p.StartingArm, p.Interval))

	b.WriteString("Task: watch the video and identify every completed repetition. For each rep report:\n")
	b.WriteString("- repNumber: sequential number across the whole video, starting at 1\n")
	b.WriteString("- arm: \"Left\", \"Right\" or \"Both\"\n")
	b.WriteString("- startTime and endTime: timestamps formatted as \"MM:SS.s\"\n")
	b.WriteString("- duration: rep duration in seconds (endTime minus startTime)\n")
	b.WriteString("- velocityScore: integer 1-10 rating the concentric speed, where 10 is the fastest, most explosive rep in the set\n\n")

	b.WriteString("Also report a summary (totalReps, avgDuration, avgVelocity, fastestRep, slowestRep, velocityDropoff as the percentage drop from the first rep's velocityScore to the last rep's) and short coachingNotes.\n\n")

	b.WriteString("Respond with JSON only. No prose before or after, no markdown code fences. Match exactly this shape:\n")
	b.WriteString(responseShape)

	return b.String()
}
