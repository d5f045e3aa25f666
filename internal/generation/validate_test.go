package generation

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCourse(t *testing.T) {
	t.Run("valid course", func(t *testing.T) {
		course, err := ParseCourse(`{
			"title": "Go Mastery",
			"description": "Learn Go",
			"topics": ["Basics", "Concurrency"],
			"icon": "💻"
		}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if course.Title != "Go Mastery" {
			t.Errorf("title = %q, want %q", course.Title, "Go Mastery")
		}
		if len(course.Topics) != 2 {
			t.Errorf("topics = %v, want 2 entries", course.Topics)
		}
	})

	t.Run("empty topics repaired to defaults", func(t *testing.T) {
		course, err := ParseCourse(`{
			"title": "Go Mastery",
			"description": "Learn Go",
			"topics": [],
			"icon": "💻"
		}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Introduction", "Core Concepts", "Applications", "Advanced Topics", "Summary"}
		if !reflect.DeepEqual(course.Topics, want) {
			t.Errorf("topics = %v, want %v", course.Topics, want)
		}
	})

	t.Run("invalid json is a parse error", func(t *testing.T) {
		_, err := ParseCourse(`{"title": "Go"`)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %T: %v", err, err)
		}
	})

	t.Run("missing fields is a validation error", func(t *testing.T) {
		_, err := ParseCourse(`{"title": "Go"}`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("empty title is a validation error", func(t *testing.T) {
		_, err := ParseCourse(`{"title": "", "description": "d", "topics": ["t"], "icon": "i"}`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("non-object is a validation error", func(t *testing.T) {
		_, err := ParseCourse(`[1, 2, 3]`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})
}

func TestParseQuiz(t *testing.T) {
	valid := `{
		"questions": [
			{
				"question": "What is a goroutine?",
				"options": ["A thread", "A lightweight thread", "A process", "A channel"],
				"correctAnswer": 1,
				"explanation": "Goroutines are lightweight threads managed by the runtime."
			}
		]
	}`

	t.Run("valid quiz", func(t *testing.T) {
		quiz, err := ParseQuiz(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quiz.Questions) != 1 {
			t.Fatalf("questions = %d, want 1", len(quiz.Questions))
		}
		if quiz.Questions[0].CorrectAnswer != 1 {
			t.Errorf("correctAnswer = %d, want 1", quiz.Questions[0].CorrectAnswer)
		}
	})

	t.Run("empty questions rejected", func(t *testing.T) {
		_, err := ParseQuiz(`{"questions": []}`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("wrong option count rejected", func(t *testing.T) {
		_, err := ParseQuiz(`{
			"questions": [
				{
					"question": "q",
					"options": ["a", "b", "c"],
					"correctAnswer": 0,
					"explanation": "e"
				}
			]
		}`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("out of range correctAnswer rejected", func(t *testing.T) {
		_, err := ParseQuiz(`{
			"questions": [
				{
					"question": "q",
					"options": ["a", "b", "c", "d"],
					"correctAnswer": 4,
					"explanation": "e"
				}
			]
		}`)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("invalid json is a parse error", func(t *testing.T) {
		_, err := ParseQuiz(`not json at all`)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %T: %v", err, err)
		}
	})
}

func TestValidateLessonContent(t *testing.T) {
	if err := ValidateLessonContent("Some lesson prose."); err != nil {
		t.Errorf("unexpected error for non-empty content: %v", err)
	}
	if err := ValidateLessonContent(""); err == nil {
		t.Error("expected error for empty content")
	}
	if err := ValidateLessonContent("   \n\t  "); err == nil {
		t.Error("expected error for whitespace-only content")
	}
}
