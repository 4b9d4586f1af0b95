package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type QuestionClient struct {
	BaseURL    string
	Endpoint   string
	Cookies    map[string]string
	HTTPClient *http.Client
}

func NewQuestionClient(baseURL, endpoint string, cookies map[string]string, timeoutSec int) *QuestionClient {
	return &QuestionClient{
		BaseURL:  baseURL,
		Endpoint: endpoint,
		Cookies:  cookies,
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// FetchPage 拉取一页题目列表的HTML。
func (c *QuestionClient) FetchPage(page, size int, questionTypes []string, course string) (string, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	params.Set("course", course)
	for _, qType := range questionTypes {
		params.Add("questionTypes", qType)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.BaseURL, c.Endpoint, params.Encode())
	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("构建第 %d 页请求失败: %w", page, err)
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36")
	for name, value := range c.Cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("第 %d 页请求失败: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("第 %d 页API返回错误状态: %s", page, resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取第 %d 页响应体失败: %w", page, err)
	}

	return string(bodyBytes), nil
}
