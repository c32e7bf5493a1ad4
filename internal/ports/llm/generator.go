package llm

import "context"

// Generator hace una única llamada de generación de texto.
// Sin reintentos ni streaming; el texto vuelve tal cual.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
