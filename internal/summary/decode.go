package summary

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ExtractJSON returns the first balanced JSON object embedded in text.
// Generator replies wrap the expected object in prose often enough that a
// best-effort brace-matching scan has to run before parsing.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// DecodeWeekly parses a weekly-summary reply. The second return is false on
// any shape the generator was not supposed to produce.
func DecodeWeekly(weekKey, text string, generatedAt time.Time) (Weekly, bool) {
	raw, ok := ExtractJSON(text)
	if !ok || !gjson.Valid(raw) {
		return Weekly{}, false
	}
	doc := gjson.Parse(raw)
	summaryText := strings.TrimSpace(doc.Get("summary").String())
	if summaryText == "" {
		return Weekly{}, false
	}

	w := Weekly{
		Week:        weekKey,
		Summary:     summaryText,
		MoodPattern: doc.Get("moodPattern").String(),
		GeneratedAt: generatedAt,
	}
	for _, item := range doc.Get("achievements").Array() {
		w.Achievements = append(w.Achievements, item.String())
	}
	for _, item := range doc.Get("challenges").Array() {
		w.Challenges = append(w.Challenges, item.String())
	}
	doc.Get("metrics").ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			if w.Metrics == nil {
				w.Metrics = make(map[string]float64)
			}
			w.Metrics[key.String()] = value.Float()
		}
		return true
	})
	return w, true
}

// DecodeMonthly parses a monthly-narrative reply.
func DecodeMonthly(month string, metrics Metrics, text string, generatedAt time.Time) (Monthly, bool) {
	raw, ok := ExtractJSON(text)
	if !ok || !gjson.Valid(raw) {
		return Monthly{}, false
	}
	doc := gjson.Parse(raw)
	summaryText := strings.TrimSpace(doc.Get("summary").String())
	if summaryText == "" {
		return Monthly{}, false
	}

	dominant := doc.Get("dominantMood").String()
	if dominant == "" {
		dominant = DominantMood(metrics.MoodCounts)
	}
	return Monthly{
		Month:        month,
		Summary:      summaryText,
		DominantMood: dominant,
		KeyInsight:   doc.Get("keyInsight").String(),
		Metrics:      metrics,
		GeneratedAt:  generatedAt,
	}, true
}
