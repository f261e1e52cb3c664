// Package tokens estimates prompt sizes when a provider omits usage data.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Estimator counts tokens with the model's BPE, or approximates four
// characters per token when no encoding can be loaded.
type Estimator struct {
	model string

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewEstimator returns an estimator for model. Encodings load lazily.
func NewEstimator(model string) *Estimator {
	return &Estimator{model: model}
}

// Count returns the token count of text.
func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	e.once.Do(e.load)
	if e.enc == nil {
		return approximate(text)
	}
	return len(e.enc.Encode(text, nil, nil))
}

func (e *Estimator) load() {
	if enc, err := tiktoken.EncodingForModel(e.model); err == nil {
		e.enc = enc
		return
	}
	if enc, err := tiktoken.GetEncoding(fallbackEncoding); err == nil {
		e.enc = enc
	}
}

func approximate(text string) int {
	return (len([]rune(text)) + 3) / 4
}
