package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/interview-coach/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type CatalogVoice struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type CatalogKind struct {
	Name        models.QuestionKind `json:"name"`
	Description string              `json:"description"`
}

// Catalog lists the choices offered when starting an interview.
type Catalog struct {
	Companies     []string       `yaml:"companies" json:"companies"`
	JobTitles     []string       `yaml:"job_titles" json:"job_titles"`
	Difficulties  []string       `yaml:"difficulties" json:"difficulties"`
	QuestionKinds []string       `yaml:"question_kinds" json:"-"`
	Kinds         []CatalogKind  `yaml:"-" json:"question_kinds"`
	Voices        []CatalogVoice `yaml:"voices" json:"voices"`
	DefaultCount  int            `yaml:"default_count" json:"default_count"`
	MaxQuestions  int            `yaml:"max_questions" json:"max_questions"`
}

// LoadCatalog reads the catalog at path, or the built-in one when path is
// empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, d := range c.Difficulties {
		if _, err := models.ParseDifficulty(d); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
	}
	for _, name := range c.QuestionKinds {
		kind, err := models.ParseQuestionKind(name)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		c.Kinds = append(c.Kinds, CatalogKind{Name: kind, Description: kind.Description()})
	}

	if c.MaxQuestions <= 0 {
		c.MaxQuestions = 75
	}
	if c.DefaultCount <= 0 || c.DefaultCount > c.MaxQuestions {
		c.DefaultCount = min(5, c.MaxQuestions)
	}
	return &c, nil
}
