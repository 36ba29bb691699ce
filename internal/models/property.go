package models

// TileCategory classifies a board position
type TileCategory string

const (
	// TileCategoryProperty is an ordinary, improvable property
	TileCategoryProperty TileCategory = "property"

	// TileCategoryRailroad is a station; rent depends on how many stations the owner holds
	TileCategoryRailroad TileCategory = "railroad"

	// TileCategoryUtility rent depends on the dice roll
	TileCategoryUtility TileCategory = "utility"

	// TileCategoryTax charges a fixed amount to the bank
	TileCategoryTax TileCategory = "tax"

	// TileCategoryCorner covers GO, jail, free parking and go-to-jail
	TileCategoryCorner TileCategory = "corner"

	// TileCategoryChance draws from the chance deck
	TileCategoryChance TileCategory = "chance"

	// TileCategoryCommunity draws from the community chest deck
	TileCategoryCommunity TileCategory = "community"
)

// Purchasable reports whether tiles of this category can be owned
func (c TileCategory) Purchasable() bool {
	return c == TileCategoryProperty || c == TileCategoryRailroad || c == TileCategoryUtility
}

const (
	// BoardSize is the number of positions on the board
	BoardSize = 40

	// StartPosition is the GO tile
	StartPosition = 0

	// JailPosition is where jailed players are kept
	JailPosition = 10

	// GoToJailPosition sends whoever lands on it to jail
	GoToJailPosition = 30

	// MaxImprovements is a hotel
	MaxImprovements = 5
)

// TileSpec is the static, process-wide description of a board position
type TileSpec struct {
	// ID is the board position, 0-39
	ID int `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Category decides how landing on the tile is resolved
	Category TileCategory `json:"type"`

	// Color is the display color of ordinary properties
	Color string `json:"color,omitempty"`

	// Price is the purchase price, 0 when not for sale
	Price int `json:"price,omitempty"`

	// Rent is the rent schedule: 6 entries for properties (base, 1-4 houses, hotel),
	// 4 entries for railroads (1-4 owned), empty for utilities
	Rent []int `json:"rent,omitempty"`

	// Group is the improvement group of ordinary properties
	Group string `json:"group,omitempty"`

	// HouseCost is the price of one improvement
	HouseCost int `json:"house_cost,omitempty"`

	// TaxAmount is charged by tax tiles
	TaxAmount int `json:"amount,omitempty"`

	// Description is flavour text
	Description string `json:"description"`
}

// PropertyTile is one board position as tracked in a game session
type PropertyTile struct {
	TileSpec

	// Owner is the owning player's ID, empty when owned by the bank
	Owner string `json:"owner,omitempty"`

	// Improvements counts houses, 5 means a hotel
	Improvements int `json:"houses"`

	// Mortgaged tiles collect no rent
	Mortgaged bool `json:"mortgaged"`
}

// HasHotel reports whether the tile carries a hotel
func (t *PropertyTile) HasHotel() bool {
	return t.Improvements == MaxImprovements
}

// MortgageValue is what the bank pays for mortgaging the tile
func (t *PropertyTile) MortgageValue() int {
	return t.Price / 2
}

// UnmortgageCost is the mortgage value plus 10% interest
func (t *PropertyTile) UnmortgageCost() int {
	value := t.MortgageValue()
	return value + value/10
}

// Clone returns a copy that shares only the read-only rent schedule
func (t *PropertyTile) Clone() *PropertyTile {
	c := *t
	return &c
}
