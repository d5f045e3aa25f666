package generation

import (
	"reflect"
	"strings"
	"testing"
)

// checkCourseInvariants verifies a course record satisfies the invariants the
// handlers rely on.
func checkCourseInvariants(t *testing.T, course *CourseRecord) {
	t.Helper()
	if course.Title == "" {
		t.Error("course title is empty")
	}
	if course.Description == "" {
		t.Error("course description is empty")
	}
	if len(course.Topics) == 0 {
		t.Error("course has no topics")
	}
	if course.Icon == "" {
		t.Error("course icon is empty")
	}
}

// checkQuizInvariants verifies a quiz record satisfies the invariants the
// handlers rely on.
func checkQuizInvariants(t *testing.T, quiz *QuizRecord) {
	t.Helper()
	if len(quiz.Questions) == 0 {
		t.Fatal("quiz has no questions")
	}
	for i, q := range quiz.Questions {
		if q.Question == "" {
			t.Errorf("question %d has empty text", i)
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			t.Errorf("question %d correctAnswer = %d, out of range", i, q.CorrectAnswer)
		}
	}
}

func TestFallbackCourseMissingKey(t *testing.T) {
	course := FallbackCourseMissingKey("learn python")
	checkCourseInvariants(t, course)

	if course.Title != "Custom Learning Course: learn python" {
		t.Errorf("title = %q", course.Title)
	}
	if course.Icon != "⚠️" {
		t.Errorf("icon = %q, want warning", course.Icon)
	}
	if len(course.Topics) != 3 {
		t.Errorf("topics = %v, want 3 entries", course.Topics)
	}
}

func TestFallbackCourseInvocation(t *testing.T) {
	course := FallbackCourseInvocation("Python basics")
	checkCourseInvariants(t, course)

	if course.Title != "Course: Python basics" {
		t.Errorf("title = %q, want %q", course.Title, "Course: Python basics")
	}
	if course.Icon != "📚" {
		t.Errorf("icon = %q, want book", course.Icon)
	}
	if len(course.Topics) != 6 {
		t.Errorf("topics = %v, want 6 entries", course.Topics)
	}
}

func TestFallbackCourseInvocationTruncatesLongPrompt(t *testing.T) {
	prompt := strings.Repeat("x", 80)
	course := FallbackCourseInvocation(prompt)

	want := "Course: " + strings.Repeat("x", 50) + "..."
	if course.Title != want {
		t.Errorf("title = %q, want %q", course.Title, want)
	}
}

func TestFallbackCourseParse(t *testing.T) {
	course := FallbackCourseParse("machine learning")
	checkCourseInvariants(t, course)

	if course.Title != "Machine learning Mastery Course" {
		t.Errorf("title = %q", course.Title)
	}
	if len(course.Topics) != 6 {
		t.Errorf("topics = %v, want 6 entries", course.Topics)
	}
}

func TestFallbacksAreDeterministic(t *testing.T) {
	if !reflect.DeepEqual(FallbackCourseMissingKey("go"), FallbackCourseMissingKey("go")) {
		t.Error("FallbackCourseMissingKey varies between calls")
	}
	if !reflect.DeepEqual(FallbackCourseInvocation("go"), FallbackCourseInvocation("go")) {
		t.Error("FallbackCourseInvocation varies between calls")
	}
	if !reflect.DeepEqual(FallbackCourseParse("go"), FallbackCourseParse("go")) {
		t.Error("FallbackCourseParse varies between calls")
	}
	if FallbackLessonContent("Loops", "Go 101") != FallbackLessonContent("Loops", "Go 101") {
		t.Error("FallbackLessonContent varies between calls")
	}
	if !reflect.DeepEqual(FallbackQuizInvocation("boom"), FallbackQuizInvocation("boom")) {
		t.Error("FallbackQuizInvocation varies between calls")
	}
}

func TestFallbackLessonContent(t *testing.T) {
	content := FallbackLessonContent("Goroutines", "Go Concurrency")

	if content == "" {
		t.Fatal("fallback lesson content is empty")
	}
	if !strings.Contains(content, "Goroutines") {
		t.Error("content does not mention the topic")
	}
	if !strings.Contains(content, "Go Concurrency") {
		t.Error("content does not mention the course title")
	}
	if !strings.HasPrefix(content, "Goroutines") {
		t.Error("content does not open with the topic")
	}
}

func TestFallbackQuizMissingKey(t *testing.T) {
	quiz := FallbackQuizMissingKey()
	checkQuizInvariants(t, quiz)

	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(quiz.Questions))
	}
	if quiz.Questions[0].CorrectAnswer != 0 {
		t.Errorf("correctAnswer = %d, want 0", quiz.Questions[0].CorrectAnswer)
	}
}

func TestFallbackQuizInvocation(t *testing.T) {
	quiz := FallbackQuizInvocation("connection refused")
	checkQuizInvariants(t, quiz)

	if !strings.Contains(quiz.Questions[0].Question, "connection refused") {
		t.Errorf("question does not echo the error: %q", quiz.Questions[0].Question)
	}
	if !strings.Contains(quiz.Questions[0].Explanation, "connection refused") {
		t.Errorf("explanation does not echo the error: %q", quiz.Questions[0].Explanation)
	}
}

func TestFallbackQuizInvocationEmptyMessage(t *testing.T) {
	quiz := FallbackQuizInvocation("")
	checkQuizInvariants(t, quiz)

	if !strings.Contains(quiz.Questions[0].Question, "Unknown error") {
		t.Errorf("question = %q, want unknown error placeholder", quiz.Questions[0].Question)
	}
}

func TestFallbackQuizGeneric(t *testing.T) {
	quiz := FallbackQuizGeneric()
	checkQuizInvariants(t, quiz)

	if quiz.Questions[0].CorrectAnswer != 3 {
		t.Errorf("correctAnswer = %d, want 3", quiz.Questions[0].CorrectAnswer)
	}
}

func TestIconForSubject(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"learn programming in go", "💻"},
		{"graphic design basics", "🎨"},
		{"business management 101", "💼"},
		{"intro to physics", "🔬"},
		{"discrete mathematics", "📐"},
		{"english writing", "📝"},
		{"music theory", "🎵"},
		{"health and fitness", "⚕️"},
		{"cooking for beginners", "👨‍🍳"},
		{"photography fundamentals", "📸"},
		{"ancient history", "📚"},
		{"PROGRAMMING", "💻"},
	}

	for _, tt := range tests {
		if got := IconForSubject(tt.prompt); got != tt.want {
			t.Errorf("IconForSubject(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate(strings.Repeat("a", 50), 50); got != strings.Repeat("a", 50) {
		t.Errorf("truncate at boundary = %q", got)
	}
	if got := truncate(strings.Repeat("a", 51), 50); got != strings.Repeat("a", 50)+"..." {
		t.Errorf("truncate over boundary = %q", got)
	}
	// Rune-safe for multibyte input.
	if got := truncate(strings.Repeat("é", 51), 50); got != strings.Repeat("é", 50)+"..." {
		t.Errorf("truncate multibyte = %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"python", "Python"},
		{"Python", "Python"},
		{"", ""},
		{"élan", "Élan"},
	}

	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
