package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	AcceptThreshold    float64
	SuggestThreshold   float64
	ShortlistSize      int
	NoMatchAnswer      string
	Greeting           string
	LoadFailureNotice  string
	TopRecommendations int
}

const (
	defaultAcceptThreshold   = 0.45
	defaultSuggestThreshold  = 0.35
	defaultShortlistSize     = 3
	defaultNoMatchAnswer     = "🤖 Sorry, I couldn't find a matching answer."
	defaultGreeting          = "👋 Hi — I'm the Devbay Assistant. Ask me anything about Devbay!"
	defaultLoadFailureNotice = "⚠️ Failed to load Q&A data from CSV."
	defaultRecommendations   = 5
)

// DefaultConfig mirrors the widget's built-in thresholds and messages.
func DefaultConfig() Config {
	return Config{
		AcceptThreshold:    defaultAcceptThreshold,
		SuggestThreshold:   defaultSuggestThreshold,
		ShortlistSize:      defaultShortlistSize,
		NoMatchAnswer:      defaultNoMatchAnswer,
		Greeting:           defaultGreeting,
		LoadFailureNotice:  defaultLoadFailureNotice,
		TopRecommendations: defaultRecommendations,
	}
}

func (c Config) withDefaults() Config {
	if c.ShortlistSize <= 0 {
		c.ShortlistSize = defaultShortlistSize
	}
	if c.NoMatchAnswer == "" {
		c.NoMatchAnswer = defaultNoMatchAnswer
	}
	if c.Greeting == "" {
		c.Greeting = defaultGreeting
	}
	if c.LoadFailureNotice == "" {
		c.LoadFailureNotice = defaultLoadFailureNotice
	}
	if c.TopRecommendations <= 0 {
		c.TopRecommendations = defaultRecommendations
	}
	return c
}
