package factory

import (
	"fmt"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm/ollama"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm/openai"
)

// NewProvider selects the LLM backend by name.
func NewProvider(providerName, modelName, openAIKey, ollamaBaseURL string) (llm.Provider, error) {
	switch providerName {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", providerName)
	}
}
