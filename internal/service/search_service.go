package service

import (
	"encoding/json"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"smartblog/internal/entity"
)

const tagIndex = "tags"

// SearchService keeps the tag autocomplete index in sync with the
// database. Index writes are best-effort: a failed write only logs,
// autocomplete falls back to the database when the index misbehaves.
type SearchService interface {
	IndexTag(tag *entity.Tag)
	DeleteTag(id string)
	SuggestTags(query string, limit int64) ([]string, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

type meiliTagDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	searchableAttrs := []string{"name"}
	if _, err := s.client.Index(tagIndex).UpdateSearchableAttributes(&searchableAttrs); err != nil {
		log.Printf("Failed to update tags searchable attributes: %v", err)
		return
	}
	log.Println("Meilisearch indexes initialized")
}

func (s *meiliSearchService) IndexTag(tag *entity.Tag) {
	doc := meiliTagDoc{
		ID:   tag.ID.String(),
		Name: tag.Name,
	}
	if _, err := s.client.Index(tagIndex).AddDocuments([]meiliTagDoc{doc}, strPtr("id")); err != nil {
		log.Printf("Failed to index tag %s: %v", tag.Name, err)
	}
}

func (s *meiliSearchService) DeleteTag(id string) {
	if _, err := s.client.Index(tagIndex).DeleteDocument(id); err != nil {
		log.Printf("Failed to delete tag %s from index: %v", id, err)
	}
}

func (s *meiliSearchService) SuggestTags(query string, limit int64) ([]string, error) {
	resp, err := s.client.Index(tagIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON rather than type-asserting the hit maps.
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var docs []meiliTagDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	return names, nil
}

func strPtr(s string) *string {
	return &s
}
