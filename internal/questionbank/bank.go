package questionbank

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Categories []entity.QuestionCategory `yaml:"categories"`
}

// Bank is the static, ordered question catalog
type Bank struct {
	categories []entity.QuestionCategory
	byCategory map[string]int
	byQuestion map[string]entity.Question
}

// Load parses the catalog shipped with the binary
func Load() (*Bank, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Bank, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question catalog: %w", err)
	}

	b := &Bank{
		categories: file.Categories,
		byCategory: make(map[string]int, len(file.Categories)),
		byQuestion: make(map[string]entity.Question),
	}

	for i, c := range file.Categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category #%d has no id", i+1)
		}
		if _, ok := b.byCategory[c.ID]; ok {
			return nil, fmt.Errorf("duplicate category id '%s'", c.ID)
		}
		b.byCategory[c.ID] = i

		for _, q := range c.Questions {
			if q.ID == "" || strings.TrimSpace(q.Text) == "" {
				return nil, fmt.Errorf("category '%s' has a question without id or text", c.ID)
			}
			if _, ok := b.byQuestion[q.ID]; ok {
				return nil, fmt.Errorf("duplicate question id '%s'", q.ID)
			}
			b.byQuestion[q.ID] = q
		}
	}

	return b, nil
}

// ListCategories returns the catalog in its fixed order with base question text
func (b *Bank) ListCategories() []entity.QuestionCategory {
	out := make([]entity.QuestionCategory, len(b.categories))
	for i, c := range b.categories {
		out[i] = copyCategory(c)
	}
	return out
}

// ResolvedCategories returns the catalog with every question text resolved for the relationship
func (b *Bank) ResolvedCategories(rel entity.Relationship) []entity.QuestionCategory {
	out := b.ListCategories()
	key := rel.VariantKey()
	for i := range out {
		for j := range out[i].Questions {
			out[i].Questions[j].Text = ResolveText(out[i].Questions[j], key)
		}
	}
	return out
}

// ResolveText returns the non-empty variant for the relationship label, or the base text
func ResolveText(q entity.Question, relationship string) string {
	if v, ok := q.Variants[relationship]; ok && v != "" {
		return v
	}
	return q.Text
}

// QuestionsForCategory returns the category's questions with display text resolved.
// An unknown category yields an empty slice.
func (b *Bank) QuestionsForCategory(ctx context.Context, categoryID string, rel entity.Relationship) []entity.Question {
	idx, ok := b.byCategory[categoryID]
	if !ok {
		ctxzap.Warn(ctx, "unknown question category requested",
			zap.String("category_id", categoryID),
		)
		return []entity.Question{}
	}

	key := rel.VariantKey()
	src := b.categories[idx].Questions
	out := make([]entity.Question, len(src))
	for i, q := range src {
		out[i] = copyQuestion(q)
		out[i].Text = ResolveText(q, key)
	}
	return out
}

func (b *Bank) Question(id string) (entity.Question, bool) {
	q, ok := b.byQuestion[id]
	if !ok {
		return entity.Question{}, false
	}
	return copyQuestion(q), true
}

// Resolve looks up ids in order with text resolved for the relationship.
// Unknown ids are skipped.
func (b *Bank) Resolve(ids []string, rel entity.Relationship) []entity.Question {
	key := rel.VariantKey()
	out := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := b.byQuestion[id]
		if !ok {
			continue
		}
		resolved := copyQuestion(q)
		resolved.Text = ResolveText(q, key)
		out = append(out, resolved)
	}
	return out
}

func copyCategory(c entity.QuestionCategory) entity.QuestionCategory {
	questions := make([]entity.Question, len(c.Questions))
	for i, q := range c.Questions {
		questions[i] = copyQuestion(q)
	}
	c.Questions = questions
	return c
}

func copyQuestion(q entity.Question) entity.Question {
	if q.Variants == nil {
		return q
	}
	variants := make(map[string]string, len(q.Variants))
	for k, v := range q.Variants {
		variants[k] = v
	}
	q.Variants = variants
	return q
}
