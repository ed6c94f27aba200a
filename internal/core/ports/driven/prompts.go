package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptDecide asks the model to pick one candidate among close matches.
	// The template expects %s (user query) and %s (numbered candidate lines).
	PromptDecide = "decide"

	// PromptInterpret turns a natural-language command into intent JSON.
	// The template expects a single %s placeholder for the command.
	PromptInterpret = "interpret"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service uses its built-in default prompt.
	SetPromptStore(store PromptStore)
}
