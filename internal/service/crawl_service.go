package service

import (
	"Question-Bank-Crawler/internal/client"
	"Question-Bank-Crawler/internal/model"
	"Question-Bank-Crawler/internal/parser"
	"Question-Bank-Crawler/internal/processor"
	"Question-Bank-Crawler/internal/repository"
	"Question-Bank-Crawler/internal/writer"
	"fmt"
	"log"
	"strings"
	"sync"
)

type CrawlService struct {
	questionClient *client.QuestionClient
	answerBankRepo *repository.AnswerBankRepository
	defaults       model.CrawlOptions
	backfill       bool
}

func NewCrawlService(questionClient *client.QuestionClient, answerBankRepo *repository.AnswerBankRepository, defaults model.CrawlOptions, backfill bool) *CrawlService {
	return &CrawlService{
		questionClient: questionClient,
		answerBankRepo: answerBankRepo,
		defaults:       defaults,
		backfill:       backfill,
	}
}

// DefaultOptions 返回配置文件里的默认爬取参数。
func (s *CrawlService) DefaultOptions() model.CrawlOptions {
	return s.defaults
}

func generateQuestionFingerprint(q model.Question) string {
	parts := []string{strings.TrimSpace(q.Question)}
	for _, label := range []string{"A", "B", "C", "D", "E"} {
		parts = append(parts, strings.TrimSpace(q.Options[label]))
	}
	return strings.Join(parts, "|")
}

// Crawl 并发抓取全部页面，规范化后把有答案和无答案的题目分别写入CSV。
func (s *CrawlService) Crawl(opts model.CrawlOptions) (*model.CrawlStats, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	if concurrency > opts.MaxPages {
		concurrency = opts.MaxPages
	}
	fmt.Printf("开始使用 %d 个并发抓取 %d 页...\n", concurrency, opts.MaxPages)

	var (
		allQuestions []model.Question
		mu           sync.Mutex
		wg           sync.WaitGroup
		stats        model.CrawlStats
	)
	sem := make(chan struct{}, concurrency)

	for page := 1; page <= opts.MaxPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			pageHTML, err := s.questionClient.FetchPage(page, opts.PageSize, opts.QuestionTypes, opts.Course)
			if err != nil {
				// 单页失败不影响其他页面
				log.Printf("警告: 第 %d 页抓取失败: %v", page, err)
				mu.Lock()
				stats.PagesFailed++
				mu.Unlock()
				return
			}

			questions := parser.ParsePage(pageHTML)
			fmt.Printf("第 %d 页获取到 %d 道题目\n", page, len(questions))

			mu.Lock()
			stats.PagesFetched++
			allQuestions = append(allQuestions, questions...)
			mu.Unlock()
		}(page)
	}
	wg.Wait()

	stats.TotalCrawled = len(allQuestions)
	fmt.Printf("总共爬取到 %d 道题目\n", stats.TotalCrawled)

	if s.backfill {
		stats.Backfilled = s.backfillFromBank(allQuestions)
		if stats.Backfilled > 0 {
			fmt.Printf("从答案库回填了 %d 道题目的答案。\n", stats.Backfilled)
		}
	}

	answered, answerMissing := processor.Process(allQuestions)
	stats.Answered = len(answered)
	stats.AnswerMissing = len(answerMissing)

	s.learnFromAnswered(answered)

	if err := writer.WriteQuestionsCSV(answered, opts.OutputFile); err != nil {
		return nil, err
	}
	fmt.Printf("正常题目已保存到 %s，共 %d 道题目\n", opts.OutputFile, len(answered))

	if len(answerMissing) > 0 {
		emptyFile := writer.EmptyAnswerPath(opts.OutputFile)
		if err := writer.WriteQuestionsCSV(answerMissing, emptyFile); err != nil {
			return nil, err
		}
		fmt.Printf("空答案题目已保存到 %s，共 %d 道题目\n", emptyFile, len(answerMissing))
	}

	return &stats, nil
}

func (s *CrawlService) backfillFromBank(questions []model.Question) int {
	backfilled := 0
	for i, q := range questions {
		if strings.TrimSpace(q.CorrectAnswer) != "" {
			continue
		}
		if answer, found := s.answerBankRepo.Query(generateQuestionFingerprint(q)); found {
			questions[i].CorrectAnswer = answer
			backfilled++
		}
	}
	return backfilled
}

func (s *CrawlService) learnFromAnswered(answered []model.Question) {
	newAnswers := make(map[string]string, len(answered))
	for _, q := range answered {
		// 与CSV输出保持一致，去掉站点返回答案外层的引号
		newAnswers[generateQuestionFingerprint(q)] = strings.Trim(strings.TrimSpace(q.CorrectAnswer), `"`)
	}
	if err := s.answerBankRepo.Save(newAnswers); err != nil {
		log.Printf("警告: 保存答案库失败: %v", err)
	}
}
