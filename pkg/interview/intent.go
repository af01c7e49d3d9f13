package interview

import "github.com/artem13815/rirekisho/pkg/nlp"

// Intent is what the user meant by a turn, beyond its content.
type Intent struct {
	Skip bool
}

// IntentClassifier decides whether a message asks to skip the current step.
type IntentClassifier interface {
	Classify(message string) Intent
}

// DefaultSkipKeywords are matched by case-insensitive containment.
var DefaultSkipKeywords = []string{"次へ", "次に", "next", "なし", "ない", "特にない", "skip", "none", "n/a"}

// KeywordClassifier flags a skip when any keyword occurs in the message.
type KeywordClassifier struct {
	Keywords []string
}

func NewKeywordClassifier(keywords ...string) KeywordClassifier {
	if len(keywords) == 0 {
		keywords = DefaultSkipKeywords
	}
	return KeywordClassifier{Keywords: keywords}
}

func (k KeywordClassifier) Classify(message string) Intent {
	return Intent{Skip: nlp.ContainsAnyFold(message, k.Keywords)}
}
