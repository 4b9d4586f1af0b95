package model

// 站点上出现的题型标签
const (
	TypeSingleChoice = "单选题"
	TypeMultiChoice  = "多选题"
	TypeJudgment     = "判断题"
	TypeFillBlank    = "填空题"
)

type Question struct {
	Type           string            `json:"type"`
	Question       string            `json:"question"`
	Options        map[string]string `json:"options"`
	Source         string            `json:"source"`
	CorrectAnswer  string            `json:"correct_answer"`
	KnowledgePoint string            `json:"knowledge_point"`
}

type CrawlOptions struct {
	MaxPages      int      `json:"max_pages"`
	PageSize      int      `json:"page_size"`
	Concurrency   int      `json:"concurrency"`
	Course        string   `json:"course"`
	QuestionTypes []string `json:"question_types"`
	OutputFile    string   `json:"output_file"`
}

type CrawlStats struct {
	PagesFetched  int `json:"pages_fetched"`
	PagesFailed   int `json:"pages_failed"`
	TotalCrawled  int `json:"total_crawled"`
	Answered      int `json:"answered"`
	AnswerMissing int `json:"answer_missing"`
	Backfilled    int `json:"backfilled"`
}
