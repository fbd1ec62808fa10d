// Package tokenizer estimates how many model tokens a prompt will consume.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

const (
	defaultEncodingName = "cl100k_base"
	errorNilEncoder     = "nil tiktoken encoder"
	errorFallbackFormat = "initialize fallback tokenizer: %w"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New(errorNilEncoder)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// NewCounter returns a tiktoken-backed Counter for model. Models tiktoken does
// not know are counted with the cl100k_base encoding, which is also reported
// as the counter name.
func NewCounter(model string) (Counter, error) {
	resolvedModel := ResolveModel(model)
	if IsOpenAIModel(resolvedModel) {
		encoding, encodingError := tiktoken.EncodingForModel(resolvedModel)
		if encodingError == nil && encoding != nil {
			return encodingCounter{encoding: encoding, name: resolvedModel}, nil
		}
	}
	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, fmt.Errorf(errorFallbackFormat, fallbackError)
	}
	return encodingCounter{encoding: fallback, name: defaultEncodingName}, nil
}

// ResolveModel normalizes a configured model name.
func ResolveModel(model string) string {
	trimmedModel := strings.ToLower(strings.TrimSpace(model))
	if trimmedModel == "" {
		return DefaultModel
	}
	return trimmedModel
}

// IsOpenAIModel reports whether tiktoken may carry a dedicated encoding for model.
func IsOpenAIModel(model string) bool {
	prefixes := []string{
		"gpt-",
		"text-embedding",
		"davinci",
		"curie",
		"babbage",
		"ada",
		"code-",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
