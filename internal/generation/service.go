package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vlearn/vlearn-backend/internal/config"
	"github.com/vlearn/vlearn-backend/internal/groq"
	"github.com/vlearn/vlearn-backend/internal/logger"
)

// Service orchestrates prompt building, model invocation, normalization,
// validation and fallback synthesis for the three generation tasks.
//
// Every failure path resolves to a deterministic fallback exactly once;
// callers always receive a record satisfying the type's invariants. The
// service holds no per-request state.
type Service struct {
	invoker groq.Invoker
	cfg     *config.GenerationConfig
	prompts *PromptBuilder
	logger  *logger.Logger
}

func NewService(invoker groq.Invoker, cfg *config.GenerationConfig, logger *logger.Logger) *Service {
	return &Service{
		invoker: invoker,
		cfg:     cfg,
		prompts: NewPromptBuilder(cfg),
		logger:  logger,
	}
}

func samplingParams(task config.TaskConfig) groq.SamplingParams {
	return groq.SamplingParams{
		Temperature: task.Temperature,
		MaxTokens:   task.MaxTokens,
		TopP:        task.TopP,
	}
}

// GenerateCourse synthesizes a course outline for a free-text prompt.
func (s *Service) GenerateCourse(ctx context.Context, prompt string) (*CourseRecord, Outcome) {
	ctx = logger.WithTask(ctx, string(TaskCourse))
	log := s.logger.WithContext(ctx).WithComponent("generation")

	raw, err := s.invoker.Generate(ctx, s.cfg.Course.Model, s.prompts.CoursePrompt(prompt), samplingParams(s.cfg.Course))
	if err != nil {
		if errors.Is(err, groq.ErrMissingAPIKey) {
			log.Warn("inference API key not configured, serving fallback course")
			return FallbackCourseMissingKey(prompt), OutcomeFallback
		}
		log.Error("course generation call failed", slog.String("error", err.Error()))
		return FallbackCourseInvocation(prompt), OutcomeFallback
	}

	course, err := ParseCourse(NormalizeResponse(raw))
	if err != nil {
		log.Error("course output rejected",
			slog.String("error", err.Error()),
			slog.String("raw", raw))
		return FallbackCourseParse(prompt), OutcomeFallback
	}

	return course, OutcomeSuccess
}

// GenerateLessonContent synthesizes lesson prose for a topic in a course.
// Lesson output is free-form text, so there is no JSON span to extract; only
// the non-empty invariant is enforced.
func (s *Service) GenerateLessonContent(ctx context.Context, topic, courseTitle string) (string, Outcome) {
	ctx = logger.WithTask(ctx, string(TaskLesson))
	log := s.logger.WithContext(ctx).WithComponent("generation")

	raw, err := s.invoker.Generate(ctx, s.cfg.Lesson.Model, s.prompts.LessonPrompt(topic, courseTitle), samplingParams(s.cfg.Lesson))
	if err != nil {
		if errors.Is(err, groq.ErrMissingAPIKey) {
			log.Warn("inference API key not configured, serving fallback lesson content")
		} else {
			log.Error("lesson content generation call failed", slog.String("error", err.Error()))
		}
		return FallbackLessonContent(topic, courseTitle), OutcomeFallback
	}

	content := strings.TrimSpace(raw)
	if err := ValidateLessonContent(content); err != nil {
		log.Error("lesson content rejected", slog.String("error", err.Error()))
		return FallbackLessonContent(topic, courseTitle), OutcomeFallback
	}

	return content, OutcomeSuccess
}

// GenerateQuiz synthesizes a multiple-choice quiz for a course and topics.
func (s *Service) GenerateQuiz(ctx context.Context, courseTitle string, topics []string) (*QuizRecord, Outcome) {
	ctx = logger.WithTask(ctx, string(TaskQuiz))
	log := s.logger.WithContext(ctx).WithComponent("generation")

	raw, err := s.invoker.Generate(ctx, s.cfg.Quiz.Model, s.prompts.QuizPrompt(courseTitle, topics), samplingParams(s.cfg.Quiz))
	if err != nil {
		if errors.Is(err, groq.ErrMissingAPIKey) {
			log.Warn("inference API key not configured, serving fallback quiz")
			return FallbackQuizMissingKey(), OutcomeFallback
		}
		log.Error("quiz generation call failed", slog.String("error", err.Error()))
		return FallbackQuizInvocation(err.Error()), OutcomeFallback
	}

	quiz, err := ParseQuiz(NormalizeResponse(raw))
	if err != nil {
		log.Error("quiz output rejected",
			slog.String("error", err.Error()),
			slog.String("raw", raw))
		return FallbackQuizGeneric(), OutcomeFallback
	}

	return quiz, OutcomeSuccess
}
