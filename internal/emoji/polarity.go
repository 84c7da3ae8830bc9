package emoji

// polarity is the frozen per-emoji weight table. Positive weights are in
// (0, 1], negative weights are stored as negative of the same magnitude.
// Unlisted emoji score 0 (neutral, but still counted toward presence).
var polarity = map[string]float64{
	"😊": 0.8, "😄": 0.9, "😃": 0.8, "😀": 0.7, "🙂": 0.6, "😉": 0.7,
	"😍": 0.9, "🥰": 0.9, "😘": 0.8, "😗": 0.7, "☺️": 0.8, "🤗": 0.8,
	"🤩": 0.9, "😇": 0.8, "😋": 0.7, "😎": 0.8, "🥳": 0.9, "🎉": 0.8,
	"❤️": 0.9, "💕": 0.8, "💖": 0.9, "💗": 0.8, "🌟": 0.7, "✨": 0.7,
	"👍": 0.7, "👏": 0.8, "🙌": 0.8, "💪": 0.7, "🔥": 0.8, "💯": 0.8,

	"😢": -0.8, "😭": -0.9, "😔": -0.7, "😞": -0.7, "😟": -0.6, "😕": -0.6,
	"☹️": -0.7, "🙁": -0.6, "😤": -0.7, "😠": -0.8, "😡": -0.9, "🤬": -0.9,
	"😰": -0.8, "😨": -0.8, "😱": -0.9, "😖": -0.7, "😣": -0.7, "😫": -0.8,
	"😩": -0.8, "🥺": -0.7, "😪": -0.6, "😴": -0.5, "🤒": -0.7, "🤕": -0.7,
	"💔": -0.9, "😿": -0.8, "👎": -0.7, "💀": -0.8, "😵": -0.8,
}
