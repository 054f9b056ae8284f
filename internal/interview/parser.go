package interview

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

var trailingCommaPattern = regexp.MustCompile(`,\s*([\]\)}])`)

// extractList returns the text between the first '[' and the last ']'.
func extractList(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// normalizeForJSON repairs the two mistakes models make most often: trailing
// commas before a closing bracket and single-quoted strings.
func normalizeForJSON(s string) string {
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	return strings.ReplaceAll(s, "'", `"`)
}

// parseEntries decodes the extracted list, first as a literal and then as
// normalized JSON. Both errors are returned when neither succeeds.
func parseEntries(list string) (items []any, literalErr, jsonErr error) {
	v, literalErr := parseLiteral(list)
	if literalErr == nil {
		if items, ok := v.([]any); ok {
			return items, nil, nil
		}
		literalErr = fmt.Errorf("top-level value is %T, not a list", v)
	}

	var decoded any
	if jsonErr = json.Unmarshal([]byte(normalizeForJSON(list)), &decoded); jsonErr != nil {
		return nil, literalErr, jsonErr
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, literalErr, fmt.Errorf("top-level value is %T, not a list", decoded)
	}
	return items, nil, nil
}

// parsedEntry is one element of the model's list, classified by shape.
type parsedEntry interface {
	question() any
	explanation() any
}

// fullEntry is a (question, correct_option, options, explanation) tuple.
// Elements after the fourth are ignored.
type fullEntry struct {
	Question      any
	CorrectOption any
	Options       any
	Explanation   any
}

// briefEntry is a (question, explanation) pair.
type briefEntry struct {
	Question    any
	Explanation any
}

func (e fullEntry) question() any     { return e.Question }
func (e fullEntry) explanation() any  { return e.Explanation }
func (e briefEntry) question() any    { return e.Question }
func (e briefEntry) explanation() any { return e.Explanation }

func classifyEntry(item any) (parsedEntry, bool) {
	fields, ok := item.([]any)
	if !ok {
		return nil, false
	}
	switch {
	case len(fields) >= 4:
		return fullEntry{Question: fields[0], CorrectOption: fields[1], Options: fields[2], Explanation: fields[3]}, true
	case len(fields) == 2:
		return briefEntry{Question: fields[0], Explanation: fields[1]}, true
	}
	return nil, false
}

// buildRecord turns an entry into a record of the requested kind. Entries
// that cannot form a valid record are rejected.
func buildRecord(entry parsedEntry, kind models.QuestionKind) (models.QuestionRecord, bool) {
	question, ok := scalarText(entry.question())
	if !ok || question == "" {
		return models.QuestionRecord{}, false
	}
	answer, ok := scalarText(entry.explanation())
	if !ok {
		return models.QuestionRecord{}, false
	}
	rec := models.QuestionRecord{Question: question, Kind: kind, ModelAnswer: answer}
	if !kind.IsMultipleChoice() {
		return rec, true
	}

	full, ok := entry.(fullEntry)
	if !ok {
		return models.QuestionRecord{}, false
	}
	options, ok := optionMap(full.Options)
	if !ok || len(options) < 2 {
		return models.QuestionRecord{}, false
	}
	correct, ok := scalarText(full.CorrectOption)
	if !ok {
		return models.QuestionRecord{}, false
	}
	label, ok := matchLabel(options, correct)
	if !ok {
		return models.QuestionRecord{}, false
	}
	rec.Options = options
	rec.CorrectOption = label
	return rec, true
}

// parseQuestionSet converts the raw model response into records. The caller
// receives a GenerationError when nothing usable could be recovered.
func parseQuestionSet(raw string, kind models.QuestionKind) (models.QuestionSet, error) {
	list, ok := extractList(raw)
	if !ok {
		return nil, &GenerationError{Reason: ErrNoStructuredList.Error(), RawResponse: raw, Cause: ErrNoStructuredList}
	}

	items, literalErr, jsonErr := parseEntries(list)
	if literalErr != nil && jsonErr != nil {
		return nil, &GenerationError{
			Reason:      ErrUnparseable.Error(),
			RawResponse: raw,
			LiteralErr:  literalErr,
			JSONErr:     jsonErr,
			Cause:       ErrUnparseable,
		}
	}

	set := make(models.QuestionSet, 0, len(items))
	for _, item := range items {
		entry, ok := classifyEntry(item)
		if !ok {
			continue
		}
		if rec, ok := buildRecord(entry, kind); ok {
			set = append(set, rec)
		}
	}
	if len(set) == 0 {
		return nil, &GenerationError{Reason: ErrEmptyResult.Error(), RawResponse: raw, Cause: ErrEmptyResult}
	}
	return set, nil
}

// scalarText renders strings, numbers and booleans as trimmed text. None
// becomes the empty string; containers are rejected.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func optionMap(v any) (map[string]string, bool) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		text, ok := scalarText(val)
		if !ok {
			return nil, false
		}
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, false
		}
		if _, dup := out[key]; dup {
			return nil, false
		}
		out[key] = text
	}
	return out, true
}

// matchLabel finds the option key for the declared correct option, ignoring
// case, and returns the key as spelled in the options map.
func matchLabel(options map[string]string, correct string) (string, bool) {
	if correct == "" {
		return "", false
	}
	if _, ok := options[correct]; ok {
		return correct, true
	}
	for label := range options {
		if strings.EqualFold(label, correct) {
			return label, true
		}
	}
	return "", false
}
