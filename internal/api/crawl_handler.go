package api

import (
	"Question-Bank-Crawler/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CrawlRequest struct {
	MaxPages      int      `json:"max_pages"`
	PageSize      int      `json:"page_size"`
	Course        string   `json:"course"`
	QuestionTypes []string `json:"question_types"`
	OutputFile    string   `json:"output_file"`
}

type CrawlHandler struct {
	crawlService *service.CrawlService
}

func NewCrawlHandler(crawlService *service.CrawlService) *CrawlHandler {
	return &CrawlHandler{crawlService: crawlService}
}

// StartCrawlHandler 触发一次爬取，请求体中的字段覆盖配置文件里的默认值。
func (h *CrawlHandler) StartCrawlHandler(c *gin.Context) {
	var req CrawlRequest
	// 空请求体表示全用默认值，格式错误的请求体要报出来
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	opts := h.crawlService.DefaultOptions()
	if req.MaxPages > 0 {
		opts.MaxPages = req.MaxPages
	}
	if req.PageSize > 0 {
		opts.PageSize = req.PageSize
	}
	if req.Course != "" {
		opts.Course = req.Course
	}
	if len(req.QuestionTypes) > 0 {
		opts.QuestionTypes = req.QuestionTypes
	}
	if req.OutputFile != "" {
		opts.OutputFile = req.OutputFile
	}

	stats, err := h.crawlService.Crawl(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "爬取失败",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("爬取完成！共 %d 道题目，有答案 %d 道，无答案 %d 道。", stats.TotalCrawled, stats.Answered, stats.AnswerMissing),
		"stats":   stats,
	})
}
