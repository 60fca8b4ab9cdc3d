package driven

// PromptStore loads LLM prompt templates by name.
type PromptStore interface {
	Load(name string) (string, error)
}

// Prompt names.
const (
	// PromptAnswerSystem is the system prompt for grounded answers. No placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptAnswer takes two %s placeholders: the context records, then the question.
	PromptAnswer = "answer"
)
