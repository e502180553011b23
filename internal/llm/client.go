// Package llm defines the text-completion collaborator used by the
// resolver, query generator, analyzer and formatter, with a live
// OpenAI-backed implementation and a fixed-response test client.
package llm

import (
	"context"
	"strings"
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry in the ordered conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// Request describes a single completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int

	// JSONResponse asks for a JSON object. Models without native
	// structured-output support receive an appended instruction
	// instead of the response-format flag.
	JSONResponse bool
}

// Client is the completion-service capability injected into every
// stage that needs it. Selected once at configuration time.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// jsonCapableModels accept the json_object response format natively.
var jsonCapableModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-4-turbo-preview",
	"gpt-4-0125-preview",
	"gpt-4-1106-preview",
	"gpt-3.5-turbo-1106",
	"gpt-3.5-turbo-0125",
}

// SupportsJSONResponse probes whether a model accepts a structured
// output request flag. Unknown models are assumed not to.
func SupportsJSONResponse(model string) bool {
	lower := strings.ToLower(model)
	for _, capable := range jsonCapableModels {
		if lower == capable || strings.HasPrefix(lower, capable+"-") {
			return true
		}
	}
	return false
}

// instructJSON rewrites messages for models without native JSON
// support: the system message (inserted if absent) and the final user
// message both gain an explicit instruction.
func instructJSON(messages []Message) []Message {
	const instruction = "Respond with valid JSON only."

	out := make([]Message, len(messages))
	copy(out, messages)

	hasSystem := false
	for i := range out {
		if out[i].Role == RoleSystem {
			hasSystem = true
			if !strings.Contains(strings.ToUpper(out[i].Content), "JSON") {
				out[i].Content += "\n\n" + instruction
			}
			break
		}
	}
	if !hasSystem {
		out = append([]Message{{Role: RoleSystem, Content: instruction}}, out...)
	}

	if n := len(out); n > 0 && out[n-1].Role == RoleUser {
		out[n-1].Content += "\n\n" + instruction
	}
	return out
}
