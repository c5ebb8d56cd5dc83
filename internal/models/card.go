package models

import (
	"bytes"
	"encoding/json"
)

// Scalar holds a raw JSON scalar from the card data. The source mixes strings
// and numbers for the same attribute (cost is "5" on some cards and 5 on
// others), so the literal is kept as-is and rendered on demand.
type Scalar struct {
	raw json.RawMessage
}

// NewScalar wraps a string value.
func NewScalar(s string) Scalar {
	b, _ := json.Marshal(s)
	return Scalar{raw: b}
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	s.raw = append(s.raw[:0], data...)
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

// String renders the value the way filters compare against it: strings as
// their content, numbers and booleans as their literal, null or absent as "".
func (s Scalar) String() string {
	raw := bytes.TrimSpace(s.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	return string(raw)
}

// IsZero reports whether the value renders as the empty string.
func (s Scalar) IsZero() bool {
	return s.String() == ""
}

// CardSet is the nested "set" object of a card.
type CardSet struct {
	GroupID    Scalar `json:"groupId"`
	Name       Scalar `json:"name"`
	BeautyName Scalar `json:"beauty_name"`
	SetCode    Scalar `json:"set_code"`

	raw json.RawMessage
}

func (s *CardSet) UnmarshalJSON(data []byte) error {
	type alias CardSet
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = CardSet(a)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (s CardSet) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	type alias CardSet
	return json.Marshal(alias(s))
}

// Fields returns every key of the set object as found in the source data.
func (s CardSet) Fields() map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage)
	if len(s.raw) > 0 {
		if err := json.Unmarshal(s.raw, &fields); err == nil {
			return fields
		}
	}
	fields["groupId"], _ = s.GroupID.MarshalJSON()
	if !s.Name.IsZero() {
		fields["name"], _ = s.Name.MarshalJSON()
	}
	if !s.BeautyName.IsZero() {
		fields["beauty_name"], _ = s.BeautyName.MarshalJSON()
	}
	if !s.SetCode.IsZero() {
		fields["set_code"], _ = s.SetCode.MarshalJSON()
	}
	return fields
}

// Card is a single One Piece TCG card record. The source object is kept
// verbatim and served back unchanged, unknown keys included.
type Card struct {
	Set      *CardSet          `json:"set,omitempty"`
	Variants []json.RawMessage `json:"variants,omitempty"`
	ID       Scalar            `json:"id"`
	Code     Scalar            `json:"code"`
	Rarity   Scalar            `json:"rarity"`
	Type     Scalar            `json:"type"`
	Name     Scalar            `json:"name"`
	Cost     Scalar            `json:"cost"`
	Power    Scalar            `json:"power"`
	Counter  Scalar            `json:"counter"`
	Color    Scalar            `json:"color"`
	Family   Scalar            `json:"family"`
	Ability  Scalar            `json:"ability"`
	Trigger  Scalar            `json:"trigger"`

	raw json.RawMessage
}

func (c *Card) UnmarshalJSON(data []byte) error {
	type alias Card
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Card(a)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	type alias Card
	return json.Marshal(alias(c))
}

// GroupID returns the rendered set.groupId, or "" when the card has no set.
func (c *Card) GroupID() string {
	if c.Set == nil {
		return ""
	}
	return c.Set.GroupID.String()
}

// SetSummary is a distinct set derived from the cards that reference it.
type SetSummary struct {
	Fields    map[string]json.RawMessage
	Names     []string // only populated for the multi-name group
	GroupID   string
	SetCode   string
	CardCount int
}

// MarshalJSON flattens the set object's own keys next to card_count and names.
func (s SetSummary) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Fields)+2)
	for k, v := range s.Fields {
		out[k] = v
	}
	out["card_count"] = s.CardCount
	if s.Names != nil {
		out["names"] = s.Names
	}
	return json.Marshal(out)
}

// Page is the standard paginated list envelope.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// SetCardsPage lists every card of one set in a single page.
type SetCardsPage struct {
	GroupID    string `json:"groupId"`
	Data       []Card `json:"data"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}
