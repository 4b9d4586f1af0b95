package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AnswerBankRepository 以题目指纹为键持久化已见过的正确答案，
// 跨多次爬取积累，用于回填站点未展示答案的题目。
type AnswerBankRepository struct {
	filePath string
	mu       sync.RWMutex
	bank     map[string]string
}

func NewAnswerBankRepository(filePath string) (*AnswerBankRepository, error) {
	repo := &AnswerBankRepository{
		filePath: filePath,
		bank:     make(map[string]string),
	}
	if err := repo.load(); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("答案库文件不存在，将创建一个新的。")
			if err := repo.persist(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	fmt.Printf("答案库加载完成，当前包含 %d 条答案。\n", len(repo.bank))
	return repo, nil
}

func (r *AnswerBankRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byteValue, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}
	if len(byteValue) == 0 {
		r.bank = make(map[string]string)
		return nil
	}
	if err := json.Unmarshal(byteValue, &r.bank); err != nil {
		return fmt.Errorf("解析答案库JSON失败: %w", err)
	}
	return nil
}

func (r *AnswerBankRepository) persist() error {
	byteValue, err := json.MarshalIndent(r.bank, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化答案库失败: %w", err)
	}
	if err := os.WriteFile(r.filePath, byteValue, 0644); err != nil {
		return fmt.Errorf("写入答案库文件失败: %w", err)
	}
	return nil
}

func (r *AnswerBankRepository) Query(fingerprint string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	answer, found := r.bank[fingerprint]
	return answer, found
}

func (r *AnswerBankRepository) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bank)
}

// Save 合并新答案并在有新增时落盘，已存在的指纹不会被覆盖。
func (r *AnswerBankRepository) Save(newAnswers map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addedCount := 0
	for fingerprint, answer := range newAnswers {
		if _, exists := r.bank[fingerprint]; !exists {
			r.bank[fingerprint] = answer
			addedCount++
		}
	}

	if addedCount > 0 {
		fmt.Printf("答案库新增 %d 条答案，正在持久化...\n", addedCount)
		return r.persist()
	}
	return nil
}
