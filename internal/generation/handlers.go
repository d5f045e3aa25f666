package generation

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/errors"
	"github.com/vlearn/vlearn-backend/internal/logger"
	"github.com/vlearn/vlearn-backend/internal/request_tracking"
)

// Handler handles HTTP requests for the generation endpoints.
type Handler struct {
	service  *Service
	tracking *request_tracking.Service // optional; nil disables usage logging
	logger   *logger.Logger
}

func NewHandler(service *Service, tracking *request_tracking.Service, logger *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		tracking: tracking,
		logger:   logger,
	}
}

// GenerateCourse handles POST /api/v1/generate/course.
// The prompt is the only input a fallback can echo, so a missing body is the
// one generation error that surfaces to the caller.
func (h *Handler) GenerateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.AbortWithBadRequest(c, "Invalid request body", nil)
		return
	}

	if req.Prompt == "" {
		errors.AbortWithBadRequest(c, "Prompt is required and must be a string", nil)
		return
	}

	start := time.Now()
	course, outcome := h.service.GenerateCourse(c.Request.Context(), req.Prompt)
	h.recordUsage(c, TaskCourse, h.service.cfg.Course.Model, outcome, time.Since(start))

	c.JSON(http.StatusOK, CourseResponse{Course: *course})
}

// GenerateContent handles POST /api/v1/generate/content.
func (h *Handler) GenerateContent(c *gin.Context) {
	var req LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Internal(c, "An unexpected error occurred during content generation.", nil)
		return
	}

	start := time.Now()
	content, outcome := h.service.GenerateLessonContent(c.Request.Context(), req.Topic, req.CourseTitle)
	h.recordUsage(c, TaskLesson, h.service.cfg.Lesson.Model, outcome, time.Since(start))

	c.JSON(http.StatusOK, LessonResponse{Content: content})
}

// GenerateQuiz handles POST /api/v1/generate/quiz.
// Always 200: even a malformed body resolves to the generic fallback quiz.
func (h *Handler) GenerateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log := h.logger.WithContext(c.Request.Context()).WithComponent("generation_handler")
		log.Warn("malformed quiz request body, serving fallback quiz")
		c.JSON(http.StatusOK, FallbackQuizGeneric())
		return
	}

	start := time.Now()
	quiz, outcome := h.service.GenerateQuiz(c.Request.Context(), req.CourseTitle, req.Topics)
	h.recordUsage(c, TaskQuiz, h.service.cfg.Quiz.Model, outcome, time.Since(start))

	c.JSON(http.StatusOK, quiz)
}

func (h *Handler) recordUsage(c *gin.Context, task Task, model string, outcome Outcome, duration time.Duration) {
	if h.tracking == nil {
		return
	}

	userID, _ := auth.GetUserUUID(c)
	info := request_tracking.RequestInfo{
		UserID:     userID,
		Task:       string(task),
		Model:      model,
		Outcome:    string(outcome),
		DurationMs: duration.Milliseconds(),
	}

	if err := h.tracking.LogRequestAsync(c.Request.Context(), info); err != nil {
		h.logger.WithContext(c.Request.Context()).Warn("failed to queue usage record", "error", err)
	}
}
