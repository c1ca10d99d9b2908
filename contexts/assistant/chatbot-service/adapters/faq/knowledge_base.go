package faqadapter

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"musubime/contexts/assistant/chatbot-service/domain/entities"
	domainerrors "musubime/contexts/assistant/chatbot-service/domain/errors"

	"gopkg.in/yaml.v3"
)

//go:embed default_faq.yaml
var defaultFAQ []byte

type document struct {
	Entries []entities.FAQEntry `yaml:"entries"`
}

// KnowledgeBase is an FAQ loaded once from YAML.
type KnowledgeBase struct {
	entries []entities.FAQEntry
}

// Load reads the FAQ from path, or the built-in knowledge base when path is empty.
func Load(path string) (KnowledgeBase, error) {
	raw := defaultFAQ
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return KnowledgeBase{}, fmt.Errorf("read faq %s: %w", path, err)
		}
		raw = data
	}
	return Parse(raw)
}

func Parse(raw []byte) (KnowledgeBase, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return KnowledgeBase{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidFAQ, err)
	}
	seen := make(map[string]struct{}, len(doc.Entries))
	entries := make([]entities.FAQEntry, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		entry.ID = strings.TrimSpace(entry.ID)
		if entry.ID == "" {
			entry.ID = fmt.Sprintf("faq-%d", i+1)
		}
		if strings.TrimSpace(entry.Answer) == "" || len(entry.Keywords) == 0 {
			return KnowledgeBase{}, fmt.Errorf("%w: entry %s needs keywords and an answer", domainerrors.ErrInvalidFAQ, entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return KnowledgeBase{}, fmt.Errorf("%w: duplicate entry %s", domainerrors.ErrInvalidFAQ, entry.ID)
		}
		seen[entry.ID] = struct{}{}
		entries = append(entries, entry)
	}
	return KnowledgeBase{entries: entries}, nil
}

func (k KnowledgeBase) Entries(context.Context) ([]entities.FAQEntry, error) {
	return append([]entities.FAQEntry(nil), k.entries...), nil
}
