package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Registra el último
// prompt recibido para poder inspeccionarlo.
type MockClient struct {
	Response   string
	Err        error
	LastPrompt string
	Calls      int
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	m.Calls++
	return m.Response, m.Err
}
