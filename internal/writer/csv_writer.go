package writer

import (
	"Question-Bank-Crawler/internal/model"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// 列顺序与下游的导入模板对齐，"难度"列实际存放知识点
var csvHeader = []string{"题号", "题干", "A", "B", "C", "D", "E", "答案", "难度", "题型"}

// utf8BOM 让Excel等表格软件正确识别UTF-8编码
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteQuestionsCSV 将题目写入CSV文件，题号按写入顺序从1开始编号。
func WriteQuestionsCSV(questions []model.Question, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("创建输出文件 '%s' 失败: %w", outputFile, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("写入BOM失败: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for i, q := range questions {
		row := []string{
			strconv.Itoa(i + 1),
			q.Question,
			q.Options["A"],
			q.Options["B"],
			q.Options["C"],
			q.Options["D"],
			q.Options["E"],
			strings.Trim(strings.TrimSpace(q.CorrectAnswer), `"`),
			q.KnowledgePoint,
			q.Type,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("写入CSV文件 '%s' 失败: %w", outputFile, err)
	}
	return nil
}

// EmptyAnswerPath 返回无答案题目的输出路径，在扩展名前加固定后缀。
func EmptyAnswerPath(outputFile string) string {
	ext := filepath.Ext(outputFile)
	return strings.TrimSuffix(outputFile, ext) + "_empty_answers" + ext
}
