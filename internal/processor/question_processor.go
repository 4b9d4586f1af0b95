package processor

import (
	"Question-Bank-Crawler/internal/model"
	"strings"
)

const (
	JudgmentTrueText  = "正确"
	JudgmentFalseText = "错误"
)

var (
	trueAnswers  = []string{"正确", "是", "对", "1", "True", "Y", "T", "A"}
	falseAnswers = []string{"错误", "错", "否", "不对", "0", "False", "N", "F", "B"}

	// 多选题答案形如 "[""A"", ""B"", ""C""]"，去掉所有标点和空格
	multiAnswerCleaner = strings.NewReplacer("[", "", "]", "", " ", "", `"`, "", "'", "", ",", "")
)

// Process 对整批题目做规范化并按答案是否为空拆分。
// 判断题转成A/B单选形式，多选题答案清理成纯字母序列；
// 每道题恰好落入一个分组，组内保持输入顺序。
func Process(questions []model.Question) (answered, answerMissing []model.Question) {
	for _, q := range questions {
		if q.Type == model.TypeJudgment {
			q = convertJudgmentToChoice(q)
		}
		if q.Type == model.TypeMultiChoice {
			q.CorrectAnswer = multiAnswerCleaner.Replace(q.CorrectAnswer)
		}

		if strings.TrimSpace(q.CorrectAnswer) == "" {
			answerMissing = append(answerMissing, q)
		} else {
			answered = append(answered, q)
		}
	}
	return answered, answerMissing
}

// convertJudgmentToChoice 把判断题改写成A/B选项的单选形式。
// 答案匹配固定的"对/错"等价集合；集合未命中时退化为包含A或包含B的判断，
// 例如站点返回的 "\"B\"" 这种带引号的答案只能靠包含关系识别。
func convertJudgmentToChoice(q model.Question) model.Question {
	if q.Options == nil {
		q.Options = make(map[string]string)
	}
	q.Options["A"] = JudgmentTrueText
	q.Options["B"] = JudgmentFalseText

	original := strings.TrimSpace(q.CorrectAnswer)
	if matchesAny(original, trueAnswers) || strings.Contains(original, "A") {
		q.CorrectAnswer = "A"
	} else if matchesAny(original, falseAnswers) || strings.Contains(original, "B") {
		q.CorrectAnswer = "B"
	}
	return q
}

func matchesAny(s string, set []string) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
