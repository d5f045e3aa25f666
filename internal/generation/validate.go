package generation

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Literal JSON Schemas for the structured record types. Validated before
// unmarshaling so a malformed model response produces one precise reason
// instead of a zero-valued struct.
const (
	courseSchema = `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"description": {"type": "string", "minLength": 1},
			"topics": {"type": "array", "items": {"type": "string"}},
			"icon": {"type": "string", "minLength": 1}
		},
		"required": ["title", "description", "topics", "icon"]
	}`

	quizSchema = `{
		"type": "object",
		"properties": {
			"questions": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"options": {"type": "array", "items": {"type": "string"}, "minItems": 4, "maxItems": 4},
						"correctAnswer": {"type": "integer", "minimum": 0, "maximum": 3},
						"explanation": {"type": "string"}
					},
					"required": ["question", "options", "correctAnswer", "explanation"]
				}
			}
		},
		"required": ["questions"]
	}`
)

var (
	compiledCourseSchema = gojsonschema.NewStringLoader(courseSchema)
	compiledQuizSchema   = gojsonschema.NewStringLoader(quizSchema)
)

// defaultTopics replaces an empty topics list from the model. A repair, not a
// rejection: the rest of the record is usable.
var defaultTopics = []string{"Introduction", "Core Concepts", "Applications", "Advanced Topics", "Summary"}

// ParseCourse parses a normalized candidate into a CourseRecord. Returns
// *ParseError for malformed JSON and *ValidationError for missing structure.
// An empty topics list is repaired to the fixed defaults.
func ParseCourse(candidate string) (*CourseRecord, error) {
	if err := validateAgainst(compiledCourseSchema, candidate); err != nil {
		return nil, err
	}

	var course CourseRecord
	if err := json.Unmarshal([]byte(candidate), &course); err != nil {
		return nil, &ParseError{Err: err}
	}

	if len(course.Topics) == 0 {
		course.Topics = append([]string(nil), defaultTopics...)
	}

	return &course, nil
}

// ParseQuiz parses a normalized candidate into a QuizRecord. Every question
// must have exactly 4 options and a correctAnswer indexing one of them; no
// repair is attempted.
func ParseQuiz(candidate string) (*QuizRecord, error) {
	if err := validateAgainst(compiledQuizSchema, candidate); err != nil {
		return nil, err
	}

	var quiz QuizRecord
	if err := json.Unmarshal([]byte(candidate), &quiz); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &quiz, nil
}

// ValidateLessonContent checks the single LessonContent invariant.
func ValidateLessonContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Reason: "lesson content is empty"}
	}
	return nil
}

func validateAgainst(schema gojsonschema.JSONLoader, candidate string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(candidate))
	if err != nil {
		// gojsonschema only errors here when the document is not valid JSON.
		return &ParseError{Err: err}
	}

	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return &ValidationError{Reason: strings.Join(reasons, "; ")}
	}

	return nil
}
