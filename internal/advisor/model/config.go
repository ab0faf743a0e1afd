package model

// ================ Config ================

type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

// AdvisorModelConfig bounds generation for faster, more consistent replies.
type AdvisorModelConfig struct {
	Model       string  `envconfig:"ADVISOR_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"ADVISOR_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"ADVISOR_TEMPERATURE" default:"0.2"`
}

type AdvisorPromptConfig struct {
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"CrypGene"`
	MaxReplyWords int    `envconfig:"PROMPT_MAX_REPLY_WORDS" default:"80"`
}
