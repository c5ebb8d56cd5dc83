package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/codyseavey/optcg-api/backend/internal/models"
)

var (
	// ErrDataUnavailable means the card data could not be read or parsed.
	ErrDataUnavailable = errors.New("card data unavailable")
	// ErrNotFound means the requested card or set does not exist.
	ErrNotFound = errors.New("not found")
)

// CatalogService answers queries over the card catalog. The cards are
// loaded once and never modified afterwards, so queries need no locking.
type CatalogService struct {
	cards []models.Card
}

// NewCatalogService wraps an already loaded card list. The slice is kept,
// not copied, and must not be modified by the caller afterwards.
func NewCatalogService(cards []models.Card) *CatalogService {
	if cards == nil {
		cards = []models.Card{}
	}
	return &CatalogService{cards: cards}
}

// LoadCatalog reads a JSON array of cards from path, preserving file order.
func LoadCatalog(path string) ([]models.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrDataUnavailable, path, err)
	}
	cards, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	return cards, nil
}

// ParseCatalog decodes a JSON array of card objects.
func ParseCatalog(data []byte) ([]models.Card, error) {
	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse cards: %w", err)
	}
	if cards == nil {
		return nil, errors.New("card data is not a JSON array")
	}
	return cards, nil
}

// NewCatalogServiceFromFile loads the catalog from path, downloading it from
// downloadURL first when the file is missing and a URL is configured.
func NewCatalogServiceFromFile(path, downloadURL string) (*CatalogService, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && downloadURL != "" {
		log.Printf("Card data not found at %s. Downloading...", path)
		if err := downloadCatalog(downloadURL, path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		log.Println("Card data downloaded successfully.")
	}

	cards, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return NewCatalogService(cards), nil
}

// All returns the loaded cards in catalog order. Callers must not modify it.
func (s *CatalogService) All() []models.Card {
	return s.cards
}

func (s *CatalogService) GetCardCount() int {
	return len(s.cards)
}

func (s *CatalogService) GetSetCount() int {
	return len(AggregateSets(s.cards))
}

// ListCards returns the page of cards matching filter, in catalog order.
func (s *CatalogService) ListCards(filter CardFilter, page, limit int) models.Page[models.Card] {
	matched := make([]models.Card, 0)
	for i := range s.cards {
		if filter.Matches(&s.cards[i]) {
			matched = append(matched, s.cards[i])
		}
	}
	return Paginate(matched, page, limit)
}

// GetCard finds the first card whose id or code equals value, ignoring case.
func (s *CatalogService) GetCard(value string) (*models.Card, error) {
	for i := range s.cards {
		card := &s.cards[i]
		if strings.EqualFold(card.ID.String(), value) || strings.EqualFold(card.Code.String(), value) {
			return card, nil
		}
	}
	return nil, fmt.Errorf("card %q: %w", value, ErrNotFound)
}

// ListSets returns every distinct set with its card count.
func (s *CatalogService) ListSets() []models.SetSummary {
	return AggregateSets(s.cards)
}

// ListSetCards returns every card of the given group, ordered by code.
func (s *CatalogService) ListSetCards(groupID string) (*models.SetCardsPage, error) {
	if groupID == "" {
		return nil, fmt.Errorf("empty set id: %w", ErrNotFound)
	}
	matched := make([]models.Card, 0)
	for i := range s.cards {
		if s.cards[i].GroupID() == groupID {
			matched = append(matched, s.cards[i])
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("set %q: %w", groupID, ErrNotFound)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Code.String()) < strings.ToLower(matched[j].Code.String())
	})

	return &models.SetCardsPage{
		GroupID:    groupID,
		Data:       matched,
		Page:       1,
		Limit:      len(matched),
		Total:      len(matched),
		TotalPages: 1,
	}, nil
}
