// Package lexicon holds the static, read-only word and pattern tables the
// sentiment scorer consumes. Every table here is frozen at init time and
// never mutated; concurrent readers need no synchronization.
package lexicon

// Positive is the frozen positive-word table (47 entries).
var Positive = map[string]struct{}{
	"happy": {}, "good": {}, "great": {}, "excellent": {}, "wonderful": {}, "amazing": {}, "love": {}, "joy": {},
	"excited": {}, "thrilled": {}, "delighted": {}, "pleased": {}, "satisfied": {}, "content": {},
	"optimistic": {}, "hopeful": {}, "grateful": {}, "blessed": {}, "fantastic": {}, "awesome": {},
	"nice": {}, "fine": {}, "perfect": {}, "best": {}, "better": {}, "beautiful": {},
	"fun": {}, "enjoy": {}, "glad": {}, "proud": {}, "yay": {}, "yep": {}, "yeah": {}, "cool": {}, "sweet": {},
	"brilliant": {}, "super": {},
	"thanks": {}, "thank": {}, "appreciate": {}, "congrats": {}, "celebrate": {},
	"smile": {}, "laugh": {}, "funny": {}, "adorable": {}, "cute": {},
}

// Negative is the frozen negative-word table (49 entries).
var Negative = map[string]struct{}{
	"sad": {}, "bad": {}, "terrible": {}, "awful": {}, "hate": {}, "angry": {}, "mad": {},
	"depressed": {}, "worried": {}, "anxious": {}, "stressed": {}, "upset": {}, "frustrated": {},
	"disappointed": {}, "hurt": {}, "pain": {}, "suffer": {}, "horrible": {},
	"sick": {}, "tired": {}, "annoyed": {}, "worst": {}, "worse": {},
	"sucks": {}, "damn": {}, "hell": {}, "cry": {}, "miss": {}, "lonely": {}, "alone": {},
	"difficult": {}, "hard": {}, "tough": {}, "struggle": {}, "problem": {}, "issue": {}, "wrong": {},
	"fail": {}, "failed": {}, "failure": {}, "broke": {}, "broken": {}, "sorry": {},
	"unfortunately": {}, "sadly": {}, "regret": {}, "wish": {}, "cant": {}, "cannot": {},
}

// Filler is the set of bare tokens that short-circuit scoring to neutral
// in phase 1 of the scorer, unless an emoji is present.
var Filler = map[string]struct{}{
	"ok": {}, "okay": {}, "k": {}, "yeah": {}, "yep": {}, "nope": {}, "hmm": {}, "um": {}, "uh": {}, "lol": {},
}

// PositivePatterns and NegativePatterns are multi-word phrases scanned in
// phase 3; each match adds ±2 to the respective polarity counter.
var PositivePatterns = []string{
	"feel good", "feeling good", "sounds good",
	"look forward", "cant wait", "can't wait",
	"so happy", "really good", "went well",
}

var NegativePatterns = []string{
	"feel bad", "feeling bad", "not good",
	"dont like", "don't like", "hate it",
	"so sad", "really bad", "went wrong",
	"fed up", "had enough",
}
