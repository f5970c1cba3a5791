package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultCardColorBits is Material purple 500 packed into the top
// bytes (sRGB ARGB). Held as a variable so the int64 conversion below
// wraps at runtime instead of overflowing as a constant expression.
var defaultCardColorBits uint64 = 0xFF6200EE << 32

// DefaultCardColor is the packed color used when a card is created
// without an explicit color.
var DefaultCardColor = int64(defaultCardColorBits)

// Card is a trackable spending source. UniqueID is the portable identity
// used by export/import; ID is the local store-assigned key and never
// leaves the device.
type Card struct {
	ID        int64     `json:"id"`
	UniqueID  string    `json:"unique_id"`
	Name      string    `json:"name"`
	Color     int64     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCard assigns the permanent uniqueId at creation. It is never
// reassigned afterwards, including on re-import.
func NewCard(name string, color int64) Card {
	return Card{
		UniqueID:  uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
}

// Goal is a spend-limit target attached to one card. Goals carry no
// portable unique id; on export they are referenced by the owning
// card's name.
type Goal struct {
	ID         int64           `json:"id"`
	CardID     int64           `json:"card_id"`
	Title      string          `json:"title"`
	SpendLimit decimal.Decimal `json:"spend_limit"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	Comment    string          `json:"comment"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Transaction is a single dated spend amount attributed to a card.
// UniqueID is the dedup key for import.
type Transaction struct {
	ID          int64           `json:"id"`
	UniqueID    string          `json:"unique_id"`
	CardID      int64           `json:"card_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func NewTransaction(cardID int64, amount decimal.Decimal, description string, date time.Time) Transaction {
	return Transaction{
		UniqueID:    uuid.New().String(),
		CardID:      cardID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
}
