package interview

import (
	"strings"

	"github.com/artem13815/rirekisho/pkg/session"
)

const (
	// Apology is shown to the user when a turn could not be processed.
	Apology = "すみません、エラーが発生しました。もう一度お試しください。"

	// emptyMessagePlaceholder replaces a blank user message on the AI path.
	emptyMessagePlaceholder = "続けてください"

	completeMessage = "履歴書の作成が完了しました！右側のプレビューで確認してください。"
)

const promptHeader = "あなたは履歴書作成をサポートする親切なAIアシスタントです。フレンドリーで会話をリードしてください。\n"

// stepPrompts — одна фиксированная инструкция на шаг.
var stepPrompts = map[session.Step]string{
	session.StepEducation: promptHeader + `現在は「学歴」ステップです。

【絶対に守るルール】
1. 学歴情報を受け取ったら、必ず「職歴についての質問」をメッセージの最後に含めること
2. 確認だけで終わらず、必ず次の質問で会話を続けること
3. messageフィールドには「確認」と「次の質問」の両方を必ず含めること
4. 「なし」「次へ」の場合も、職歴の質問へ進む

【出力フォーマット】
{
  "message": "ありがとうございます！東京大学 工学部ですね。学歴として登録しました！\n\nそれでは次に職歴についてお聞きします。\nこれまでどんな会社でどんなお仕事をされてきましたか？\n\n（職歴がない場合は「なし」と入力してください）",
  "extractedData": { "education": [{ "schoolName": "東京大学", "faculty": "工学部", "degree": "学士", "startDate": "", "endDate": "" }] },
  "isStepComplete": true,
  "nextStep": "work"
}

【抽出する情報】
- schoolName: 学校名
- faculty: 学部・学科（高校の場合は科名）
- degree: 高卒/学士/修士/博士 など推測で設定
- startDate/endDate: YYYY-MM（わかれば）`,

	session.StepWork: promptHeader + `現在は「職歴」ステップです。

【絶対に守るルール】
1. 職歴情報を受け取ったら、必ず「スキル・資格についての質問」をメッセージの最後に含めること
2. 確認だけで終わらず、必ず次の質問で会話を続けること
3. 「なし」「ない」の場合は extractedData を null にして、すぐにスキル・資格の質問へ進む

【出力フォーマット】
{
  "message": "ありがとうございます！株式会社ABCで営業を3年されていたんですね。職歴として登録しました！\n\n続いてスキル・資格についてお聞きします。\nお持ちのスキルや資格を教えてください。\n\n特にない場合は「なし」と入力してください。",
  "extractedData": { "workHistories": [{ "companyName": "株式会社ABC", "position": "営業", "startDate": "", "endDate": "" }] },
  "isStepComplete": true,
  "nextStep": "skills"
}

【抽出する情報】
- companyName: 会社名
- position: 職種・役職
- startDate/endDate: YYYY-MM（わかれば）`,

	session.StepSkills: promptHeader + `現在は「スキル・資格」ステップです。

【絶対に守るルール】
1. スキル・資格を受け取ったら、必ず「自己PRの質問」をメッセージの最後に含めること
2. 確認だけで終わらず、必ず次の質問で会話を続けること
3. 「なし」の場合も、自己PRの質問へ進む

【出力フォーマット】
{
  "message": "ありがとうございます！スキル・資格を登録しました。\n\nいよいよ最後のステップです！自己PRを作成しましょう。\nあなたの強みや、仕事で大切にしていることを教えてください。",
  "extractedData": { "skills": ["Excel", "PowerPoint"], "certifications": ["普通自動車免許"] },
  "isStepComplete": true,
  "nextStep": "pr"
}

【抽出する情報】
- skills: スキル（Excel、プログラミングなど）
- certifications: 資格（免許、TOEIC、簿記など）`,

	session.StepPR: `あなたは履歴書作成をサポートする親切なAIアシスタントです。
現在は「自己PR」ステップです。

【絶対に守るルール】
1. ユーザーの強みを元に、200-400字の魅力的な自己PR文を作成する
2. 作成したPRを提示し、履歴書の作成が完了したことを伝える
3. 必ず isStepComplete: true、nextStep: "complete" にする

【出力フォーマット】
{
  "message": "素晴らしいですね！以下の自己PRを作成しました：\n\n---\n（自己PR文）\n---\n\n履歴書の作成が完了しました！\n右側のプレビューで全体を確認してください。",
  "extractedData": { "selfPR": "（自己PR文）" },
  "isStepComplete": true,
  "nextStep": "complete"
}`,

	session.StepComplete: `あなたは履歴書作成をサポートする親切なAIアシスタントです。
履歴書は完成しています。ユーザーが修正を希望する場合は対応してください。

【対応例】
- 「自己PRを変えて」→ 新しい自己PRを作成
- 「職歴を追加して」→ 追加情報を聞く
- 「スキルを増やしたい」→ 追加スキルを聞く

回答はJSON形式：
{
  "message": "修正対応のメッセージ",
  "extractedData": { },
  "isStepComplete": true,
  "nextStep": null
}`,
}

// importPrompt is used when a whole document is fed in as an edit turn.
const importPrompt = `あなたは履歴書作成をサポートする親切なAIアシスタントです。
ユーザーがアップロードした履歴書・職務経歴書のテキストから情報を抽出してください。
書かれていない項目は推測せず、extractedData に含めないでください（空の配列も入れないこと）。
項目名: fullName, fullNameKana, birthDate, gender, postalCode, address, phone, email,
education, workHistories, skills, certifications, selfPR, careerObjective

回答はJSON形式：
{
  "message": "読み込んだ内容の要約",
  "extractedData": { "fullName": "山田太郎", "skills": ["Excel"] },
  "isStepComplete": true,
  "nextStep": null
}`

func promptFor(step session.Step) string {
	if p, ok := stepPrompts[step]; ok && strings.TrimSpace(p) != "" {
		return p
	}
	return stepPrompts[session.StepEducation]
}

func draftContext(snapshot string) string {
	return "現在の履歴書データ: " + snapshot + "。回答は必ずJSON形式(json format)で返してください。"
}

// Question texts asking about each step.
const (
	questionEducation = "まずは学歴からお聞きします。\n最終学歴の学校名と学部・学科を教えてください。\n（例：「東京大学 工学部 情報工学科」）"
	questionWork      = "これまでどのような会社でお仕事をされてきましたか？\n会社名と職種を教えてください。"
	questionSkills    = "お持ちのスキルや資格を教えてください。\n（例：JavaScript, Excel, 普通自動車免許 など）"
	questionPR        = "あなたの強みや、仕事で大切にしていることを教えてください。"
)

// Greeting opens a fresh session.
const Greeting = `こんにちは！履歴書作成をお手伝いします。

基本情報は登録時に入力いただいた内容を使用します。
これから以下の順番でお聞きしていきますね：

1. 学歴 - 最終学歴について
2. 職歴 - これまでの仕事について
3. スキル・資格 - お持ちのスキルや資格
4. 自己PR - あなたの強み

` + questionEducation

// WelcomeBack builds the message shown when a user resumes a session whose
// log is empty, taking what is already saved into account.
func WelcomeBack(step session.Step, hasEducation, hasWork bool) string {
	const head = "おかえりなさい！前回の続きからですね。\n\n"
	switch session.ParseStep(string(step)) {
	case session.StepComplete:
		return "おかえりなさい！履歴書の作成は完了しています。\n\n右側のプレビューで内容を確認してください。\n修正したい箇所があれば、お知らせください。"
	case session.StepPR:
		return head + "学歴・職歴・スキルは保存されています。\n最後に自己PRを作成しましょう。\n\n" + questionPR
	case session.StepSkills:
		saved := ""
		switch {
		case hasEducation && hasWork:
			saved = "学歴と職歴は保存されています。\n"
		case hasEducation:
			saved = "学歴は保存されています。\n"
		case hasWork:
			saved = "職歴は保存されています。\n"
		}
		return head + saved + "続いてスキル・資格についてお聞きします。\n\n" + questionSkills
	case session.StepWork:
		return head + "学歴は保存されています。\n続いて職歴についてお聞きします。\n\n" + questionWork
	default:
		return Greeting
	}
}
