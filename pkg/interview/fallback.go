package interview

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/artem13815/rirekisho/pkg/nlp"
	"github.com/artem13815/rirekisho/pkg/resume"
	"github.com/artem13815/rirekisho/pkg/session"
)

// prMinRunes: a strengths statement longer than this is taken verbatim.
const prMinRunes = 20

// FallbackExtractor fills one entry per step from whitespace-separated input.
// It needs no network access.
type FallbackExtractor struct {
	classifier IntentClassifier
}

func NewFallbackExtractor(classifier IntentClassifier) *FallbackExtractor {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &FallbackExtractor{classifier: classifier}
}

func (f *FallbackExtractor) Extract(_ context.Context, in Input) (Result, error) {
	msg := strings.TrimSpace(in.Message)
	step := session.ParseStep(string(in.Step))
	skip := msg == "" || f.classifier.Classify(msg).Skip

	switch step {
	case session.StepEducation:
		if skip {
			return advance(step, "承知しました。では職歴についてお聞きします。\n\n"+questionWork+"\n\n（職歴がない場合は「なし」と入力してください）", nil), nil
		}
		school, rest := splitHead(msg)
		patch := &resume.Patch{Education: []resume.Education{{
			SchoolName: school,
			Faculty:    rest,
			Degree:     resume.DefaultDegree,
		}}}
		return advance(step, "ありがとうございます！「"+msg+"」ですね。学歴として登録しました。\n\n続いて職歴についてお聞きします。\n"+questionWork+"\n\n（職歴がない場合は「なし」と入力してください）", patch), nil

	case session.StepWork:
		if skip {
			return advance(step, "承知しました。ではスキル・資格についてお聞きします。\n\n"+questionSkills+"\n\n（特にない場合は「なし」と入力してください）", nil), nil
		}
		company, position := splitHead(msg)
		patch := &resume.Patch{WorkHistories: []resume.WorkHistory{{
			CompanyName: company,
			Position:    position,
		}}}
		return advance(step, "ありがとうございます！「"+msg+"」ですね。職歴として登録しました。\n\n続いてスキル・資格についてお聞きします。\n"+questionSkills, patch), nil

	case session.StepSkills:
		if skip {
			return advance(step, "承知しました。最後に自己PRを作成しましょう。\n\n"+questionPR+"\nそれを元に自己PR文を作成します。", nil), nil
		}
		patch := &resume.Patch{
			Skills:         nlp.SplitList(msg),
			Certifications: []string{},
		}
		return advance(step, "ありがとうございます！スキル・資格として登録しました。\n\n最後に自己PRを作成しましょう。\n"+questionPR, patch), nil

	case session.StepPR:
		if msg == "" {
			return advance(step, "承知しました。自己PRは後から追加できます。\n\n履歴書の作成が完了しました。\n右側のプレビューで内容を確認してください。", nil), nil
		}
		pr := msg
		if utf8.RuneCountInString(msg) <= prMinRunes {
			pr = "私の強みは" + msg + "です。これまでの経験を活かし、御社に貢献したいと考えております。"
		}
		return advance(step, "素晴らしい自己PRですね！以下の内容で登録しました：\n\n「"+pr+"」\n\nお疲れさまでした！履歴書の作成が完了しました。\n右側のプレビューで内容を確認してください。", &resume.Patch{SelfPR: &pr}), nil

	default:
		return Result{Message: completeMessage, IsStepComplete: true}, nil
	}
}

func advance(from session.Step, message string, patch *resume.Patch) Result {
	return Result{
		Message:        message,
		Data:           patch,
		IsStepComplete: true,
		NextStep:       stepPtr(from.Next()),
	}
}

// splitHead returns the first whitespace-separated token and the rest joined by single spaces.
func splitHead(msg string) (string, string) {
	parts := nlp.Fields(msg)
	if len(parts) == 0 {
		return msg, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
