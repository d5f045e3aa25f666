package generation

import "strings"

// Fallback synthesizers. Each is a pure function of its parameters so that
// repeated calls with the same input produce byte-identical records, and each
// output satisfies every record invariant without touching the network.

// FallbackCourseMissingKey substitutes for a course when the inference
// credential is absent.
func FallbackCourseMissingKey(prompt string) *CourseRecord {
	return &CourseRecord{
		Title:       "Custom Learning Course: " + truncate(prompt, 50),
		Description: "The inference API key is not configured. Please ensure your API key is set.",
		Topics:      []string{"API Key Missing", "Check Configuration", "Try Again"},
		Icon:        "⚠️",
	}
}

// FallbackCourseInvocation substitutes for a course when the model call fails.
func FallbackCourseInvocation(prompt string) *CourseRecord {
	return &CourseRecord{
		Title:       "Course: " + truncate(prompt, 50),
		Description: "A comprehensive course covering " + prompt + ". This fallback course was created due to API issues.",
		Topics: []string{
			"Introduction & Basics",
			"Core Concepts",
			"Practical Applications",
			"Advanced Topics",
			"Real-world Projects",
			"Best Practices",
		},
		Icon: "📚",
	}
}

// FallbackCourseParse substitutes for a course when the model output cannot
// be parsed or validated.
func FallbackCourseParse(prompt string) *CourseRecord {
	return &CourseRecord{
		Title:       capitalize(prompt) + " Mastery Course",
		Description: "A comprehensive course designed to teach you everything about " + prompt + ". From fundamentals to advanced concepts, you'll gain practical skills and knowledge.",
		Topics: []string{
			"Introduction & Overview",
			"Fundamental Concepts",
			"Core Principles",
			"Practical Applications",
			"Advanced Techniques",
			"Real-world Projects",
		},
		Icon: IconForSubject(prompt),
	}
}

// FallbackLessonContent substitutes for lesson prose when generation fails.
func FallbackLessonContent(topic, courseTitle string) string {
	return topic + `

Welcome to learning about ` + topic + `! This is an important concept in ` + courseTitle + ` that will help you build a strong foundation.

` + topic + ` refers to the fundamental elements that make up this subject area. Understanding these concepts is essential because they form the building blocks for more advanced topics you'll encounter later in the course.

Let's break this down into manageable pieces. The core ideas include the basic principles, practical applications, and how these concepts connect to real-world scenarios. By mastering these fundamentals, you'll be better prepared to tackle more complex challenges.

Key takeaways: Remember that ` + topic + ` is foundational to ` + courseTitle + `. Focus on understanding the basic principles first, then practice applying them in different contexts. This will help you build confidence and competence in the subject.`
}

// FallbackQuizMissingKey substitutes for a quiz when the inference credential
// is absent.
func FallbackQuizMissingKey() *QuizRecord {
	return &QuizRecord{
		Questions: []Question{
			{
				Question:      "The inference API key is not configured. Using fallback quiz.",
				Options:       []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectAnswer: 0,
				Explanation:   "Please ensure your API key is set.",
			},
		},
	}
}

// FallbackQuizInvocation substitutes for a quiz when the model call fails,
// echoing the failure so it is visible in the content.
func FallbackQuizInvocation(errMsg string) *QuizRecord {
	if errMsg == "" {
		errMsg = "Unknown error"
	}
	return &QuizRecord{
		Questions: []Question{
			{
				Question:      "Quiz generation failed: " + errMsg + ". Using fallback quiz.",
				Options:       []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectAnswer: 0,
				Explanation:   "Error: " + errMsg + ". Please check your API key and inference service status.",
			},
		},
	}
}

// FallbackQuizGeneric substitutes for a quiz when the model output cannot be
// parsed or an unexpected error occurs.
func FallbackQuizGeneric() *QuizRecord {
	return &QuizRecord{
		Questions: []Question{
			{
				Question: "What is the main goal of this course?",
				Options: []string{
					"To learn basic concepts",
					"To master advanced techniques",
					"To understand practical applications",
					"All of the above",
				},
				CorrectAnswer: 3,
				Explanation:   "This course covers basic concepts, advanced techniques, and practical applications.",
			},
		},
	}
}

// IconForSubject suggests a course icon based on subject keywords.
func IconForSubject(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, "programming", "code", "development"):
		return "💻"
	case containsAny(lower, "design", "art"):
		return "🎨"
	case containsAny(lower, "business", "management"):
		return "💼"
	case containsAny(lower, "science", "physics", "chemistry"):
		return "🔬"
	case containsAny(lower, "math", "mathematics"):
		return "📐"
	case containsAny(lower, "language", "english", "writing"):
		return "📝"
	case containsAny(lower, "music", "audio"):
		return "🎵"
	case containsAny(lower, "health", "fitness"):
		return "⚕️"
	case containsAny(lower, "cooking", "food"):
		return "👨‍🍳"
	case containsAny(lower, "photography", "video"):
		return "📸"
	}

	return "📚"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
