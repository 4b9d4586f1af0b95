package parser

import (
	"Question-Bank-Crawler/internal/model"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseQuestion 从单个题目卡片HTML中解析题目信息。
// 找不到 question-card 容器时返回 nil；卡片内部任何字段缺失都只会得到空值。
func ParseQuestion(fragment string) *model.Question {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	card := doc.Find("div.question-card").First()
	if card.Length() == 0 {
		return nil
	}
	return parseCard(card)
}

// ParsePage 解析页面HTML中的所有题目，按文档顺序返回。
func ParsePage(pageHTML string) []model.Question {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var questions []model.Question
	doc.Find("div.question-card").Each(func(_ int, card *goquery.Selection) {
		if q := parseCard(card); q != nil {
			questions = append(questions, *q)
		}
	})
	return questions
}

func parseCard(card *goquery.Selection) *model.Question {
	q := &model.Question{
		Type:           strings.TrimSpace(card.Find("span.question-type").First().Text()),
		Question:       strings.TrimSpace(card.Find("div.question-text").First().Text()),
		Options:        parseOptions(card.Find("div.optionsContainer").First()),
		Source:         strings.TrimSpace(card.Find("div.question-meta").First().Find("span").First().Text()),
		KnowledgePoint: strings.TrimSpace(card.Find("span.current-knowledge-point").First().Text()),
	}

	answerSpan := card.Find("div.correct-answer").First().Find("span").First()
	q.CorrectAnswer = strings.TrimSpace(answerSpan.Text())

	return q
}

// parseOptions 合并选项的两个来源：data-options 属性里的JSON为权威来源，
// 渲染出的 option-item 列表兜底补充属性里缺失的标签，已有标签不会被覆盖。
func parseOptions(container *goquery.Selection) map[string]string {
	options := make(map[string]string)
	if container.Length() == 0 {
		return options
	}

	decoded := false
	if raw, exists := container.Attr("data-options"); exists && raw != "" {
		cleaned := strings.ReplaceAll(raw, "&quot;", `"`)
		if err := json.Unmarshal([]byte(cleaned), &options); err == nil {
			decoded = true
		}
		// 解析失败时不报错，回退到渲染出的选项列表
	}

	if !decoded {
		container.Find("div.option-item").Each(func(_ int, item *goquery.Selection) {
			label, text := parseOptionItem(item)
			if label != "" {
				options[label] = text
			}
		})
	}

	// data-options 可能不包含全部选项，再扫一遍渲染列表补齐
	container.Find("div.option-item").Each(func(_ int, item *goquery.Selection) {
		label, text := parseOptionItem(item)
		if label == "" {
			return
		}
		if _, ok := options[label]; !ok {
			options[label] = text
		}
	})

	return options
}

// parseOptionItem 返回单个选项的标签和文本。
// 渲染格式为 "A: 选项文本"，去掉前三个字符（标签、冒号、空格）得到文本。
func parseOptionItem(item *goquery.Selection) (label, text string) {
	label = strings.TrimSuffix(strings.TrimSpace(item.Find("span.option-label").First().Text()), ":")

	full := []rune(strings.TrimSpace(item.Text()))
	if len(full) > 3 {
		text = string(full[3:])
	}
	return label, text
}
