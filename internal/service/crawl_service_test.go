package service

import (
	"Question-Bank-Crawler/internal/client"
	"Question-Bank-Crawler/internal/model"
	"Question-Bank-Crawler/internal/repository"
	"Question-Bank-Crawler/internal/writer"
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answeredCard = `
<div class="question-card">
    <span class="question-type">单选题</span>
    <div class="question-text">第%d页的题目</div>
    <div class="optionsContainer" data-options='{"A": "甲", "B": "乙"}'></div>
    <div class="answer-section"><div class="correct-answer"><strong>正确答案：</strong><span>"A"</span></div></div>
</div>`

const missingAnswerCard = `
<div class="question-card">
    <span class="question-type">单选题</span>
    <div class="question-text">没有答案的题目</div>
    <div class="optionsContainer" data-options='{"A": "甲", "B": "乙"}'></div>
</div>`

func newTestService(t *testing.T, serverURL string, backfill bool) (*CrawlService, *repository.AnswerBankRepository, model.CrawlOptions) {
	t.Helper()
	dir := t.TempDir()

	bankRepo, err := repository.NewAnswerBankRepository(filepath.Join(dir, "answer_bank.json"))
	require.NoError(t, err)

	defaults := model.CrawlOptions{
		MaxPages:      3,
		PageSize:      15,
		Concurrency:   2,
		Course:        "软件工程",
		QuestionTypes: []string{"单选题", "判断题", "多选题"},
		OutputFile:    filepath.Join(dir, "questions.csv"),
	}
	questionClient := client.NewQuestionClient(serverURL, "/student/software-questions", nil, 5)
	return NewCrawlService(questionClient, bankRepo, defaults, backfill), bankRepo, defaults
}

func readCSVRows(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCrawlPartitionsAndWritesFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, "<html><body>%s%s</body></html>", fmt.Sprintf(answeredCard, 1), missingAnswerCard)
		case "2":
			fmt.Fprintf(w, "<html><body>%s</body></html>", fmt.Sprintf(answeredCard, 2))
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	crawlService, _, defaults := newTestService(t, server.URL, false)
	stats, err := crawlService.Crawl(defaults)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.PagesFetched)
	assert.Equal(t, 1, stats.PagesFailed)
	assert.Equal(t, 3, stats.TotalCrawled)
	assert.Equal(t, 2, stats.Answered)
	assert.Equal(t, 1, stats.AnswerMissing)

	answeredRows := readCSVRows(t, defaults.OutputFile)
	require.Len(t, answeredRows, 3) // 表头 + 2道有答案的题目
	assert.Equal(t, "A", answeredRows[1][7])

	missingRows := readCSVRows(t, writer.EmptyAnswerPath(defaults.OutputFile))
	require.Len(t, missingRows, 2)
	assert.Equal(t, "没有答案的题目", missingRows[1][1])
	assert.Equal(t, "", missingRows[1][7])
}

func TestCrawlLearnsAnswersIntoBank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprintf(w, "<html><body>%s</body></html>", fmt.Sprintf(answeredCard, 1))
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer server.Close()

	crawlService, bankRepo, defaults := newTestService(t, server.URL, false)
	_, err := crawlService.Crawl(defaults)
	require.NoError(t, err)

	answer, found := bankRepo.Query("第1页的题目|甲|乙|||")
	assert.True(t, found)
	assert.Equal(t, "A", answer)
}

func TestCrawlBackfillsFromBank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprintf(w, "<html><body>%s</body></html>", missingAnswerCard)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer server.Close()

	crawlService, bankRepo, defaults := newTestService(t, server.URL, true)
	require.NoError(t, bankRepo.Save(map[string]string{"没有答案的题目|甲|乙|||": "B"}))

	stats, err := crawlService.Crawl(defaults)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Backfilled)
	assert.Equal(t, 1, stats.Answered)
	assert.Equal(t, 0, stats.AnswerMissing)

	rows := readCSVRows(t, defaults.OutputFile)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1][7])
}

func TestGenerateQuestionFingerprint(t *testing.T) {
	q := model.Question{
		Question: " 题干 ",
		Options:  map[string]string{"A": "甲 ", "C": "丙"},
	}
	assert.Equal(t, "题干|甲||丙||", generateQuestionFingerprint(q))
}
