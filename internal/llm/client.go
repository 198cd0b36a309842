// Package llm wraps the text-completion API the pipeline depends on. All
// callers go through the single Complete method; anything the model returns
// beyond a text blob is an implementation detail of the concrete client.
package llm

import "context"

// Client is the completion boundary: one prompt in, one text response out.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}
