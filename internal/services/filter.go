package services

import (
	"net/url"
	"strings"

	"github.com/codyseavey/optcg-api/backend/internal/models"
)

// CardFilter holds the optional per-field constraints of a card list query.
// An empty field places no constraint on the result.
type CardFilter struct {
	ID      string
	Code    string
	Rarity  string
	Type    string
	Name    string
	Cost    string
	Power   string
	Counter string
	Color   string
	Family  string
	Ability string
	Trigger string

	// SetGroupID must equal the card's set.groupId exactly.
	SetGroupID string
	// MultiVariant keeps only cards with more than one variant.
	MultiVariant bool
}

// FilterFromQuery builds a filter from request query parameters.
// Unknown parameters are ignored.
func FilterFromQuery(q url.Values) CardFilter {
	return CardFilter{
		ID:           q.Get("id"),
		Code:         q.Get("code"),
		Rarity:       q.Get("rarity"),
		Type:         q.Get("type"),
		Name:         q.Get("name"),
		Cost:         q.Get("cost"),
		Power:        q.Get("power"),
		Counter:      q.Get("counter"),
		Color:        q.Get("color"),
		Family:       q.Get("family"),
		Ability:      q.Get("ability"),
		Trigger:      q.Get("trigger"),
		SetGroupID:   q.Get("set_groupId"),
		MultiVariant: ParseMultiVariant(q.Get("multi_variant")),
	}
}

// ParseMultiVariant accepts "true" and "1" (any case); everything else is off.
func ParseMultiVariant(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true
	}
	return false
}

// fieldMatch pairs a filter value with the card attribute it constrains.
type fieldMatch struct {
	want string
	got  models.Scalar
}

func (f *CardFilter) fields(card *models.Card) [12]fieldMatch {
	return [12]fieldMatch{
		{f.ID, card.ID},
		{f.Code, card.Code},
		{f.Rarity, card.Rarity},
		{f.Type, card.Type},
		{f.Name, card.Name},
		{f.Cost, card.Cost},
		{f.Power, card.Power},
		{f.Counter, card.Counter},
		{f.Color, card.Color},
		{f.Family, card.Family},
		{f.Ability, card.Ability},
		{f.Trigger, card.Trigger},
	}
}

// Matches reports whether the card satisfies every constraint of the filter.
func (f *CardFilter) Matches(card *models.Card) bool {
	for _, fm := range f.fields(card) {
		if fm.want == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(fm.got.String()), strings.ToLower(fm.want)) {
			return false
		}
	}

	if f.SetGroupID != "" && card.GroupID() != f.SetGroupID {
		return false
	}

	if f.MultiVariant && len(card.Variants) <= 1 {
		return false
	}

	return true
}

// IsEmpty reports whether the filter constrains nothing.
func (f *CardFilter) IsEmpty() bool {
	for _, fm := range f.fields(&models.Card{}) {
		if fm.want != "" {
			return false
		}
	}
	return f.SetGroupID == "" && !f.MultiVariant
}
