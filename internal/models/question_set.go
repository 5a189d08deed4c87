package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"certchamps/publisher/internal/utils"
)

// suffix letters for multipart question sets, one per part
const PartLetters = "abcdefghijklmnopqrstuvwxyz"

// MaxParts is the largest number of parts a set may have
const MaxParts = len(PartLetters)

var (
	ErrMissingID    = errors.New("question set has no id")
	ErrTooManyParts = errors.New("question set exceeds supported part count")
)

// QuestionSet is one record of the input question bank. Field names match
// the JSON written by the question bank tooling and must not change.
type QuestionSet struct {
	ID            string    `json:"id"`
	Name          *string   `json:"name"`
	Tags          []string  `json:"tags"`
	Difficulty    any       `json:"difficulty"`
	IsExamQ       any       `json:"isExamQ"`
	MarkingScheme *string   `json:"markingScheme"`
	LogTables     *string   `json:"logTables"`
	Questions     Questions `json:"questions"`
	Answers       []any     `json:"answers"`
	OrderMatters  []any     `json:"orderMatters"`
	Prefix        []any     `json:"prefix"`
}

// UnmarshalJSON applies the defaults for absent fields (no tags, not an
// exam question) and keeps integral numbers as integers.
func (s *QuestionSet) UnmarshalJSON(data []byte) error {
	type alias QuestionSet
	a := alias{
		Tags:    []string{},
		IsExamQ: false,
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&a); err != nil {
		return err
	}

	a.Difficulty = normalizeNumbers(a.Difficulty)
	a.IsExamQ = normalizeNumbers(a.IsExamQ)
	for _, values := range [][]any{a.Answers, a.OrderMatters, a.Prefix} {
		for i := range values {
			values[i] = normalizeNumbers(values[i])
		}
	}

	*s = QuestionSet(a)
	return nil
}

// Validate checks the structural constraints a set must meet before any of
// it is published.
func (s *QuestionSet) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	if len(s.Questions) > MaxParts {
		return fmt.Errorf("%w: set %s has %d parts, maximum is %d", ErrTooManyParts, s.ID, len(s.Questions), MaxParts)
	}
	return nil
}

// FolderPath is the storage folder for the set's images: the sanitized
// first tag, or the raw id when the set is untagged.
func (s *QuestionSet) FolderPath() string {
	if len(s.Tags) > 0 {
		return utils.Sanitize(s.Tags[0])
	}
	return s.ID
}

// Parts derives the question parts of the set in index order.
func (s *QuestionSet) Parts() ([]QuestionPart, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	parts := make([]QuestionPart, 0, len(s.Questions))
	for idx, text := range s.Questions {
		suffix := ""
		if len(s.Questions) > 1 {
			suffix = string(PartLetters[idx])
		}
		parts = append(parts, QuestionPart{
			SetID:        s.ID,
			Index:        idx,
			Suffix:       suffix,
			Text:         text,
			Answer:       at(s.Answers, idx),
			OrderMatters: at(s.OrderMatters, idx),
			Prefix:       at(s.Prefix, idx),
		})
	}
	return parts, nil
}

// Document builds the top-level document stored for the set.
func (s *QuestionSet) Document() *SetDocument {
	return &SetDocument{
		ID:            s.ID,
		Name:          s.Name,
		Tags:          s.Tags,
		Difficulty:    s.Difficulty,
		IsExamQ:       s.IsExamQ,
		MarkingScheme: s.MarkingScheme,
		LogTables:     s.LogTables,
	}
}

func at(values []any, idx int) any {
	if idx < len(values) {
		return values[idx]
	}
	return nil
}

// QuestionPart is a single sub-question of a set. It only exists while
// publishing and is stored as a PartDocument.
type QuestionPart struct {
	SetID        string
	Index        int
	Suffix       string
	Text         any
	Answer       any
	OrderMatters any
	Prefix       any
}

// ImageFilename is the name of the part's image, both on disk and in the bucket.
func (p QuestionPart) ImageFilename() string {
	return p.SetID + p.Suffix + ".png"
}

// DocID is 1-based and independent of the suffix letter.
func (p QuestionPart) DocID() string {
	return fmt.Sprintf("q%d", p.Index+1)
}

// Label identifies the part in log lines, e.g. "Q1b".
func (p QuestionPart) Label() string {
	return p.SetID + p.Suffix
}

// Document builds the child document for the part. image is nil when no
// image was uploaded.
func (p QuestionPart) Document(set *QuestionSet, image *string) *PartDocument {
	return &PartDocument{
		Question:      p.Text,
		Answer:        p.Answer,
		OrderMatters:  p.OrderMatters,
		Prefix:        p.Prefix,
		Image:         image,
		MarkingScheme: set.MarkingScheme,
		LogTables:     set.LogTables,
	}
}

// Questions accepts either a JSON array or a single scalar. Array elements
// are kept as decoded; a scalar, null included, is wrapped into a
// one-element list as text.
type Questions []any

func (q *Questions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var raw []any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		for i := range raw {
			raw[i] = normalizeNumbers(raw[i])
		}
		*q = raw
		return nil
	}

	*q = Questions{text(trimmed)}
	return nil
}

// strings are unquoted, anything else keeps its JSON text
func text(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeNumbers(val[k])
		}
		return val
	default:
		return v
	}
}
