// Package airesponse extracts structured fields from free-text model output.
//
// Two strategies live here and are used by different call sites:
// ParseAnalysis always yields a usable result (defaults when nothing is found),
// ParseTags yields an empty slice when nothing is found.
package airesponse

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

const (
	DefaultSummary        = "Invoice analysis completed"
	DefaultClassification = "General"
	DefaultConfidence     = 0.8

	maxTags = 5
)

var (
	jsonPattern    = regexp.MustCompile(`(?s)\{.*\}`)
	segmentPattern = regexp.MustCompile(`[^,\n]+`)
	markerPattern  = regexp.MustCompile(`^(?:\d+[.)]|[-*•#])\s*`)
	wordRunPattern = regexp.MustCompile(`^[\p{L}\p{N}]+(?:[ &'/-]+[\p{L}\p{N}]+)*$`)
)

type Analysis struct {
	Summary        string   `json:"summary"`
	SuggestedTags  []string `json:"suggested_tags"`
	Classification string   `json:"classification"`
	Confidence     float64  `json:"confidence"`
}

// ParseAnalysis tries the first {...} span as JSON and falls back to
// "Summary:", "Tags:" and "Classification:" lines.
func ParseAnalysis(text string) Analysis {
	result, ok := parseJSONAnalysis(text)
	if !ok {
		result = parseLineAnalysis(text)
	}

	if result.Summary == "" {
		result.Summary = DefaultSummary
	}
	if result.Classification == "" {
		result.Classification = DefaultClassification
	}
	if result.SuggestedTags == nil {
		result.SuggestedTags = []string{}
	}
	return result
}

func parseJSONAnalysis(text string) (Analysis, bool) {
	match := jsonPattern.FindString(text)
	if match == "" {
		return Analysis{}, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(match), &fields); err != nil {
		return Analysis{}, false
	}

	result := Analysis{
		SuggestedTags: []string{},
		Confidence:    DefaultConfidence,
	}
	result.Summary, _ = fields["summary"].(string)
	result.Classification, _ = fields["classification"].(string)

	if tags, ok := fields["suggested_tags"].([]any); ok {
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				result.SuggestedTags = append(result.SuggestedTags, s)
			}
		}
	}

	if confidence, ok := fields["confidence"].(float64); ok && confidence > 0 && confidence <= 1 {
		result.Confidence = confidence
	}

	return result, true
}

func parseLineAnalysis(text string) Analysis {
	result := Analysis{
		SuggestedTags: []string{},
		Confidence:    DefaultConfidence,
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "summary:"):
			result.Summary = valueAfterColon(line)
		case strings.Contains(lower, "tags:"):
			result.SuggestedTags = splitTags(valueAfterColon(line))
		case strings.Contains(lower, "classification:"):
			result.Classification = valueAfterColon(line)
		}
	}

	return result
}

func valueAfterColon(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

func splitTags(value string) []string {
	tags := []string{}
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseTags sweeps comma or newline delimited word runs out of a tag-list reply,
// title-cases them and keeps at most five. List markers and a leading "label:"
// are stripped from each segment first.
func ParseTags(text string) []string {
	tags := []string{}
	seen := map[string]bool{}

	for _, segment := range segmentPattern.FindAllString(strings.ToLower(text), -1) {
		segment = markerPattern.ReplaceAllString(strings.TrimSpace(segment), "")
		if i := strings.LastIndex(segment, ":"); i >= 0 {
			segment = segment[i+1:]
		}
		segment = strings.Trim(strings.TrimSpace(segment), ".;\"'`*#-•")
		segment = strings.TrimSpace(segment)
		if !wordRunPattern.MatchString(segment) {
			continue
		}

		tag := titleCase(segment)
		if seen[tag] {
			continue
		}
		seen[tag] = true

		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}

	return tags
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
