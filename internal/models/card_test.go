package models

import (
	"encoding/json"
	"testing"
)

func TestScalarString(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"string", `"Red"`, "Red"},
		{"escaped string", `"Don!! \"x\""`, `Don!! "x"`},
		{"integer", `5`, "5"},
		{"negative", `-1000`, "-1000"},
		{"float", `2.5`, "2.5"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scalar
			if err := json.Unmarshal([]byte(tt.json), &s); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.json, err)
			}
			if got := s.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}

	var absent Scalar
	if absent.String() != "" || !absent.IsZero() {
		t.Error("absent scalar should render as empty")
	}
	if NewScalar("OP01").String() != "OP01" {
		t.Error("NewScalar should round-trip its value")
	}
}

func TestCardDecoding(t *testing.T) {
	var card Card
	src := `{"id":"OP01-001","cost":5,"set":{"groupId":3188,"name":"Romance Dawn","custom":1},"variants":[{},{}],"unknown":"kept"}`
	if err := json.Unmarshal([]byte(src), &card); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if card.ID.String() != "OP01-001" || card.Cost.String() != "5" {
		t.Errorf("unexpected scalars: id=%q cost=%q", card.ID.String(), card.Cost.String())
	}
	if card.GroupID() != "3188" {
		t.Errorf("GroupID() = %q, want 3188", card.GroupID())
	}
	if len(card.Variants) != 2 {
		t.Errorf("len(Variants) = %d, want 2", len(card.Variants))
	}
	if card.Trigger.String() != "" {
		t.Errorf("absent trigger = %q", card.Trigger.String())
	}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != src {
		t.Errorf("Marshal = %s, want source %s", out, src)
	}

	fields := card.Set.Fields()
	if string(fields["custom"]) != "1" || string(fields["groupId"]) != "3188" {
		t.Errorf("set fields not preserved: %v", fields)
	}
}

func TestCardWithoutSet(t *testing.T) {
	var card Card
	if err := json.Unmarshal([]byte(`{"id":"x","set":null}`), &card); err != nil {
		t.Fatal(err)
	}
	if card.Set != nil || card.GroupID() != "" {
		t.Errorf("expected no set, got %+v", card.Set)
	}
}

func TestCardSetFieldsWithoutSource(t *testing.T) {
	set := CardSet{GroupID: NewScalar("17675"), SetCode: NewScalar("OP05")}
	fields := set.Fields()

	if string(fields["groupId"]) != `"17675"` || string(fields["set_code"]) != `"OP05"` {
		t.Errorf("unexpected fields: %v", fields)
	}
	if _, ok := fields["name"]; ok {
		t.Error("empty name should be omitted")
	}
}

func TestSetSummaryMarshal(t *testing.T) {
	summary := SetSummary{
		Fields:    map[string]json.RawMessage{"groupId": json.RawMessage(`"17675"`)},
		Names:     []string{},
		CardCount: 3,
	}
	out, err := json.Marshal(summary)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"card_count":3,"groupId":"17675","names":[]}` {
		t.Errorf("Marshal = %s", out)
	}
}
