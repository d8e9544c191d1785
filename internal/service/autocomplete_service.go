package service

import (
	"context"
	"strings"

	"smartblog/internal/repository"
)

// defaultSuggestionLimit caps every autocomplete answer.
const defaultSuggestionLimit = 10

// sampleTerms backs the demo text-autocomplete endpoint.
var sampleTerms = []string{"apple", "banana", "cherry", "date", "fig", "grape"}

type AutocompleteService interface {
	// SuggestTerms matches the query against the fixed sample list,
	// case-insensitive substring.
	SuggestTerms(query string) []string
	// SuggestTagNames completes tag names, preferring the search index
	// and falling back to the database when it is unavailable.
	SuggestTagNames(ctx context.Context, query string) ([]string, error)
}

type autocompleteService struct {
	tags   repository.TagRepository
	search SearchService
}

func NewAutocompleteService(tags repository.TagRepository, search SearchService) AutocompleteService {
	return &autocompleteService{
		tags:   tags,
		search: search,
	}
}

func (s *autocompleteService) SuggestTerms(query string) []string {
	return listSuggestions(query, sampleTerms)
}

func (s *autocompleteService) SuggestTagNames(ctx context.Context, query string) ([]string, error) {
	if s.search != nil {
		names, err := s.search.SuggestTags(query, defaultSuggestionLimit)
		if err == nil {
			return names, nil
		}
	}

	tags, err := s.tags.SearchByPrefix(ctx, query, defaultSuggestionLimit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names, nil
}

func listSuggestions(query string, values []string) []string {
	query = strings.ToLower(query)
	matches := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			matches = append(matches, v)
		}
	}
	return matches
}
