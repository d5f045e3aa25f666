package config

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// TaskConfig holds the model and sampling parameters for one generation task.
// PromptTemplate is a fmt format string; the indexed verbs it may reference
// are documented per task on the defaults below.
type TaskConfig struct {
	Model          string   `yaml:"model"`
	Temperature    float64  `yaml:"temperature"`
	MaxTokens      int      `yaml:"max_tokens"`
	TopP           *float64 `yaml:"top_p"`
	PromptTemplate string   `yaml:"prompt_template"`
}

// GenerationConfig holds per-task configuration for the three generation tasks.
type GenerationConfig struct {
	Course TaskConfig `yaml:"course"`
	Lesson TaskConfig `yaml:"lesson"`
	Quiz   TaskConfig `yaml:"quiz"`
}

func floatPtr(f float64) *float64 { return &f }

// coursePromptTemplate references %[1]s = the user's course prompt.
const coursePromptTemplate = `Create a comprehensive learning course based on this prompt: "%[1]s"

You must respond with a valid JSON object that has this exact structure:
{
  "title": "Course Title Here",
  "description": "Course description here (2-3 sentences explaining what students will learn)",
  "topics": ["Topic 1", "Topic 2", "Topic 3", "Topic 4", "Topic 5", "Topic 6"],
  "icon": "📚"
}

Requirements:
- Create 5-7 specific learning topics/modules
- Topics should be logically ordered from basic to advanced
- Each topic should be concise (2-5 words)
- Choose an appropriate emoji icon for the course subject
- Make the course title engaging and descriptive
- Write a compelling description that explains the learning outcomes

Course subject: %[1]s

Respond ONLY with the JSON object, no other text.`

// lessonPromptTemplate references %[1]s = topic, %[2]s = course title.
const lessonPromptTemplate = `Write educational content about "%[1]s" for the course "%[2]s".

Write clear, readable content that explains the topic in simple terms. Structure your response as follows:

%[1]s

Start with a brief introduction explaining what %[1]s is and why it's important in %[2]s.

Then explain the key concepts in 2-3 paragraphs, using simple language and practical examples.

Finally, provide a summary of the main takeaways that students should remember.

Write in a conversational tone as if you're teaching a student. Use proper paragraphs and avoid special formatting symbols.`

// quizPromptTemplate references %[1]s = course title, %[2]s = comma-joined topics.
const quizPromptTemplate = `Create a quiz for the course "%[1]s" covering these topics: %[2]s.

Generate exactly 5 multiple-choice questions. For each question, provide:
1. A clear question
2. 4 answer options (A, B, C, D)
3. The correct answer (as a number 0-3)
4. A brief explanation of why the answer is correct

Format the response as a JSON object with this structure:
{
  "questions": [
    {
      "question": "Question text here",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Explanation of the correct answer"
    }
  ]
}

Make sure the questions test understanding of key concepts from the topics: %[2]s.
Questions should be challenging but fair, testing both knowledge and application.`

// DefaultGenerationConfig returns the compiled-in task configuration.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		Course: TaskConfig{
			Model:          "llama-3.1-8b-instant",
			Temperature:    0.7,
			MaxTokens:      512,
			TopP:           floatPtr(0.9),
			PromptTemplate: coursePromptTemplate,
		},
		Lesson: TaskConfig{
			Model:          "llama-3.1-8b-instant",
			Temperature:    0.7,
			MaxTokens:      800,
			PromptTemplate: lessonPromptTemplate,
		},
		Quiz: TaskConfig{
			Model:          "gemma2-9b-it",
			Temperature:    1,
			MaxTokens:      1024,
			TopP:           floatPtr(1),
			PromptTemplate: quizPromptTemplate,
		},
	}
}

// LoadGenerationConfigFile reads a YAML task config and merges it over the
// defaults. Only fields present in the file override.
func LoadGenerationConfigFile(r io.Reader) (*GenerationConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read generation config: %w", err)
	}

	var overrides GenerationConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse generation config: %w", err)
	}

	cfg := DefaultGenerationConfig()
	mergeTaskConfig(&cfg.Course, overrides.Course)
	mergeTaskConfig(&cfg.Lesson, overrides.Lesson)
	mergeTaskConfig(&cfg.Quiz, overrides.Quiz)
	return cfg, nil
}

// LoadGenerationConfig loads the task config from the path configured in the
// app config, falling back to the defaults when no path is set.
func LoadGenerationConfig(path string) (*GenerationConfig, error) {
	if path == "" {
		return DefaultGenerationConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open generation config %s: %w", path, err)
	}
	defer f.Close()

	return LoadGenerationConfigFile(f)
}

func mergeTaskConfig(dst *TaskConfig, src TaskConfig) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
	if src.MaxTokens != 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.TopP != nil {
		dst.TopP = src.TopP
	}
	if src.PromptTemplate != "" {
		dst.PromptTemplate = src.PromptTemplate
	}
}
