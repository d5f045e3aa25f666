package generation

import (
	"fmt"
	"strings"

	"github.com/vlearn/vlearn-backend/internal/config"
)

// PromptBuilder renders task prompt templates with caller parameters.
// Parameters are interpolated verbatim; the templates carry the strict
// output-shape instructions for the structured tasks.
type PromptBuilder struct {
	cfg *config.GenerationConfig
}

func NewPromptBuilder(cfg *config.GenerationConfig) *PromptBuilder {
	return &PromptBuilder{cfg: cfg}
}

// CoursePrompt builds the course outline instruction for a user prompt.
func (p *PromptBuilder) CoursePrompt(prompt string) string {
	return fmt.Sprintf(p.cfg.Course.PromptTemplate, prompt)
}

// LessonPrompt builds the lesson content instruction for a topic in a course.
func (p *PromptBuilder) LessonPrompt(topic, courseTitle string) string {
	return fmt.Sprintf(p.cfg.Lesson.PromptTemplate, topic, courseTitle)
}

// QuizPrompt builds the quiz instruction for a course and its topics.
func (p *PromptBuilder) QuizPrompt(courseTitle string, topics []string) string {
	return fmt.Sprintf(p.cfg.Quiz.PromptTemplate, courseTitle, strings.Join(topics, ", "))
}
