package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure InterpreterService implements the interfaces.
var (
	_ driving.CommandInterpreter = (*InterpreterService)(nil)
	_ driven.PromptStoreAware    = (*InterpreterService)(nil)
)

// DefaultInterpretPrompt is the fallback prompt when no PromptStore is configured.
// The single %s is the user's command.
const DefaultInterpretPrompt = `You are an AI that converts natural language into command actions.
User input: "%s"

Extract:
- intent (one of: search, open, read, summarize, delete)
- query (keywords to search for)
- file_type (optional)
- time_filter (optional)
- folder_hint (optional)

Respond in JSON ONLY. Example:
{
  "intent": "search",
  "query": "hostel fees",
  "file_type": "pdf",
  "time_filter": "yesterday",
  "folder_hint": "downloads"
}`

// InterpreterService turns natural-language commands into intents using an LLM.
type InterpreterService struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewInterpreterService creates an interpreter. llm may be nil, in which
// case every command is treated as a plain search.
func NewInterpreterService(llm driven.LLMService) *InterpreterService {
	return &InterpreterService{llm: llm}
}

// SetPromptStore sets the prompt store for loading a customised prompt.
func (s *InterpreterService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Interpret parses command into an intent, degrading to a search for the
// command itself when the model is unavailable or its reply is unusable.
func (s *InterpreterService) Interpret(ctx context.Context, command string) domain.Intent {
	command = strings.TrimSpace(command)
	fallback := domain.Intent{Intent: domain.IntentSearch, Query: command}
	if s.llm == nil || command == "" {
		return fallback
	}

	logger.Section("Command Interpretation")
	reply, err := s.llm.Generate(ctx, fmt.Sprintf(s.loadPrompt(), command), driven.GenerateOptions{
		MaxTokens: 200,
	})
	if err != nil {
		logger.Warn("Interpretation failed: %v", err)
		return fallback
	}
	logger.Debug("Interpreter reply: %q", reply)

	var intent domain.Intent
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &intent); err != nil {
		logger.Warn("Interpretation unusable: %v", err)
		return fallback
	}

	intent.Intent = strings.ToLower(strings.TrimSpace(intent.Intent))
	if intent.Intent == "" {
		intent.Intent = domain.IntentSearch
	}
	// A search the model left without keywords searches for the command.
	if intent.Intent == domain.IntentSearch && !intent.HasQuery() {
		intent.Query = command
	}
	logger.Info("Intent: %+v", intent)
	return intent
}

// loadPrompt loads the interpretation prompt, falling back to the default.
func (s *InterpreterService) loadPrompt() string {
	if s.promptStore == nil {
		return DefaultInterpretPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptInterpret)
	if err != nil || strings.Count(prompt, "%s") != 1 {
		return DefaultInterpretPrompt
	}
	return prompt
}
