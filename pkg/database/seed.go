package database

import (
	"fmt"
	"log"
	"os"

	"task_maturity_backend/internal/config"
	"task_maturity_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedDefaultAdmin admins 表为空时写入配置中的默认管理员
func SeedDefaultAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.LoginID == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.Admin{LoginID: cfg.LoginID, Password: string(hash)}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Default admin %q created", cfg.LoginID)
	return nil
}

type catalogFile struct {
	Questions []catalogQuestion `yaml:"questions"`
}

type catalogQuestion struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
}

// LoadCatalogFile 读取题库种子文件，选项按文件中的自然顺序编号
func LoadCatalogFile(path string) ([]model.TestQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]model.TestQuestion, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	questions := make([]model.TestQuestion, 0, len(file.Questions))
	for i, q := range file.Questions {
		if q.Text == "" {
			return nil, fmt.Errorf("catalog question %d: empty text", i+1)
		}
		if len(q.Options) != 8 {
			return nil, fmt.Errorf("catalog question %d: expected 8 options, got %d", i+1, len(q.Options))
		}

		question := model.TestQuestion{
			QuestionText:  q.Text,
			QuestionOrder: i + 1,
			Options:       make([]model.TestOption, 0, len(q.Options)),
		}
		for j, text := range q.Options {
			question.Options = append(question.Options, model.TestOption{
				OptionText:  text,
				OptionOrder: j + 1,
			})
		}
		questions = append(questions, question)
	}

	if len(questions) != 7 {
		return nil, fmt.Errorf("catalog must contain 7 questions, got %d", len(questions))
	}
	return questions, nil
}

// SeedCatalog 仅在题库为空时写入，返回是否写入
func SeedCatalog(db *gorm.DB, questions []model.TestQuestion) (bool, error) {
	var count int64
	if err := db.Model(&model.TestQuestion{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range questions {
			// Options 随题目一起关联创建
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("Seeded %d catalog questions", len(questions))
	return true, nil
}
