// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects the chat backend from the environment: OpenAI when
// OPENAI_API_KEY is set, otherwise the offline local stub.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: using custom OpenAI endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}
