package models

import "testing"

func TestDefaultCardColorBitPattern(t *testing.T) {
	// Material purple 500 packed into the top bytes. The sign bit of
	// the alpha byte makes the int64 representation negative.
	if uint64(DefaultCardColor) != 0xFF6200EE00000000 {
		t.Fatalf("DefaultCardColor bits = %#x, want 0xFF6200EE00000000", uint64(DefaultCardColor))
	}
	if DefaultCardColor >= 0 {
		t.Fatalf("DefaultCardColor = %d, want negative packed value", DefaultCardColor)
	}
}

func TestNewCardKeepsExplicitColor(t *testing.T) {
	cases := []struct {
		name  string
		color int64
	}{
		{"explicit zero", 0},
		{"positive", 7},
		{"default", DefaultCardColor},
	}
	for _, tc := range cases {
		card := NewCard("Visa", tc.color)
		if card.Color != tc.color {
			t.Fatalf("%s: color = %d, want %d", tc.name, card.Color, tc.color)
		}
	}
}

func TestNewCardAssignsUniqueID(t *testing.T) {
	a := NewCard("a", 0)
	b := NewCard("b", 0)
	if a.UniqueID == "" || b.UniqueID == "" {
		t.Fatal("new card has empty uniqueId")
	}
	if a.UniqueID == b.UniqueID {
		t.Fatalf("two cards share uniqueId %s", a.UniqueID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("new card has zero createdAt")
	}
}
