package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

// Result is the parsed output of one classification call.
type Result struct {
	Classification  string   `json:"classification"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

var (
	categoryRe   = regexp.MustCompile(`Category: (.+)`)
	confidenceRe = regexp.MustCompile(`Confidence: (.+)`)
)

// Parse extracts a Result from the model's free-form text response. The
// contract is a header block and a recommendation block separated by "---":
//
//	Category: <name>
//	Confidence: <float 0..1>
//	---
//	- <rec1>
//	- <rec2>
//	- <rec3>
//
// A missing Category line yields "Unknown"; a missing or unparsable Confidence
// yields 0. Malformed recommendation lines are dropped, never fatal.
func Parse(text string) Result {
	header, recBlock, _ := strings.Cut(text, "---")
	header = strings.TrimSpace(header)
	recBlock = strings.TrimSpace(recBlock)

	classification := "Unknown"
	if m := categoryRe.FindStringSubmatch(header); m != nil {
		classification = strings.TrimSpace(m[1])
	}

	confidence := 0.0
	if m := confidenceRe.FindStringSubmatch(header); m != nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64); err == nil {
			confidence = v
		}
	}

	var recommendations []string
	for _, line := range strings.Split(recBlock, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			recommendations = append(recommendations, line)
		}
	}

	return Result{
		Classification:  classification,
		Confidence:      confidence,
		Recommendations: recommendations,
	}
}
