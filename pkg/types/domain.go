package types

import (
	"fmt"
	"strings"
)

// BackendKind identifies the wire dialect a model is served through.
type BackendKind string

const (
	// BackendLMStudio speaks the OpenAI-compatible API for both listing and chat.
	BackendLMStudio BackendKind = "lm_studio"
	// BackendOllama lists models through /api/tags and chats through the OpenAI-compatible API.
	BackendOllama BackendKind = "ollama"
)

// ParseBackendKind accepts the canonical names plus a few common spellings.
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lm_studio", "lmstudio", "lm-studio":
		return BackendLMStudio, nil
	case "ollama":
		return BackendOllama, nil
	default:
		return "", fmt.Errorf("unknown backend kind: %q", s)
	}
}

// Tier is a coarse size/quality bucket. L1 is the smallest and fastest, L5 the largest and slowest.
type Tier int

const (
	TierL1 Tier = iota + 1
	TierL2
	TierL3
	TierL4
	TierL5
)

// Valid reports whether t is one of L1..L5.
func (t Tier) Valid() bool { return t >= TierL1 && t <= TierL5 }

func (t Tier) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return fmt.Sprintf("L%d", int(t))
}

// ParseTier accepts "L3", "l3" or "3".
func ParseTier(s string) (Tier, error) {
	v := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "L")
	if len(v) == 1 && v[0] >= '1' && v[0] <= '5' {
		return Tier(v[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid tier: %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Unknown is the label used when a size or quantization cannot be determined.
const Unknown = "unknown"

// ModelDescriptor is the identity and performance metadata of one deployable model.
type ModelDescriptor struct {
	// Unique within a catalog; also the value sent to the backend.
	// example: qwen3-coder-30b-a3b-instruct
	ID string `json:"id" example:"qwen3-coder-30b-a3b-instruct"`
	// example: Qwen3-Coder-30B
	DisplayName string `json:"display_name" example:"Qwen3-Coder-30B"`
	// example: lm_studio
	Backend BackendKind `json:"backend" example:"lm_studio"`
	// example: L3
	Tier Tier `json:"tier" swaggertype:"string" example:"L3"`
	// example: 30B
	ParamSize string `json:"param_size" example:"30B"`
	// example: Q4_K_M
	Quantization string `json:"quantization" example:"Q4_K_M"`
	// Measured average latency; an ordering hint, never measured at call time.
	// example: 1550
	LatencyMS int `json:"latency_ms" example:"1550"`
	// Advisory generation ceiling, not enforced.
	// example: 8192
	MaxTokens int `json:"max_tokens" example:"8192"`
	// Advisory context size, not enforced.
	// example: 131072
	ContextWindow int `json:"context_window" example:"131072"`
}

// Role of a chat message author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    Role   `json:"role" swaggertype:"string" example:"user"`
	Content string `json:"content" example:"Hello, who are you?"`
}

func System(content string) ChatMessage    { return ChatMessage{Role: RoleSystem, Content: content} }
func User(content string) ChatMessage      { return ChatMessage{Role: RoleUser, Content: content} }
func Assistant(content string) ChatMessage { return ChatMessage{Role: RoleAssistant, Content: content} }

// Usage contains token accounting reported by the backend.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one candidate completion.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// ChatResult is the canonical form of a chat-completion response.
type ChatResult struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Text returns the content of the first choice and whether one was present.
func (r ChatResult) Text() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}
