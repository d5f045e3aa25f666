package generation

// Task identifies one of the three generation tasks.
type Task string

const (
	TaskCourse Task = "course"
	TaskLesson Task = "lesson_content"
	TaskQuiz   Task = "quiz"
)

// Outcome records which path produced the response for a request.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
)

// CourseRecord is a synthesized course outline.
// Invariant: all fields non-empty, len(Topics) >= 1.
type CourseRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Icon        string   `json:"icon"`
}

// Question is a single multiple-choice quiz question.
// Invariant: exactly 4 options, CorrectAnswer indexes one of them.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizRecord is a synthesized quiz. It is also the quiz response body.
type QuizRecord struct {
	Questions []Question `json:"questions"`
}

// CourseRequest is the body of POST /generate/course.
type CourseRequest struct {
	Prompt string `json:"prompt"`
}

// LessonRequest is the body of POST /generate/content.
type LessonRequest struct {
	Topic       string `json:"topic"`
	CourseTitle string `json:"courseTitle"`
}

// QuizRequest is the body of POST /generate/quiz.
type QuizRequest struct {
	CourseTitle string   `json:"courseTitle"`
	Topics      []string `json:"topics"`
}

// CourseResponse wraps a course record in the response envelope.
type CourseResponse struct {
	Course CourseRecord `json:"course"`
}

// LessonResponse carries generated lesson prose.
type LessonResponse struct {
	Content string `json:"content"`
}
