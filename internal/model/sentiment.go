package model

// SentimentLabel is the closed set of polarity labels the scorer and
// classifier adapters may return.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Emotion names form the small closed set a classifier may populate.
const (
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionAnger    = "anger"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
	EmotionNeutral  = "neutral"
	EmotionOptimism = "optimism"
)

// EmojiAnalysis summarizes the emoji content of a single message.
type EmojiAnalysis struct {
	Label      SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
	HasEmojis  bool           `json:"has_emojis"`
}

// SentimentResult is the output of the sentiment scorer for one message.
type SentimentResult struct {
	Label      SentimentLabel     `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Emoji      *EmojiAnalysis     `json:"emoji_analysis,omitempty"`
}
