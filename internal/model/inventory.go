package model

// Item categories shared by the shop catalog and the inventory.
const (
	CategoryThemes      = "themes"
	CategoryPowerups    = "powerups"
	CategoryBackgrounds = "backgrounds"
)

// Rarity tiers from most to least common.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// BonusCoinsItemID is the powerup that pays out coins when used.
const BonusCoinsItemID = "powerup-5"

// InventoryItem is an item the user owns.
type InventoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Price       int    `json:"price"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsUsed      bool   `json:"isUsed,omitempty"`
	UsesLeft    int    `json:"usesLeft,omitempty"`
	UsageLimit  int    `json:"usageLimit,omitempty"`
	Duration    string `json:"duration,omitempty"`
	ThemeID     string `json:"themeId,omitempty"`
}

// Matches reports whether the item's name or description contains query.
func (i InventoryItem) Matches(query string) bool {
	return containsFold(query, i.Name, i.Description)
}

// ShopItem is an entry of the static shop catalog. Purchasing sends the whole
// item to the API.
type ShopItem struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price" validate:"min=1"`
	Category    string `json:"category" yaml:"category" validate:"required,oneof=themes powerups backgrounds"`
	Image       string `json:"image,omitempty" yaml:"image"`
	Rarity      string `json:"rarity" yaml:"rarity" validate:"required,oneof=common uncommon rare epic legendary"`
	ThemeID     string `json:"themeId,omitempty" yaml:"themeId" validate:"required_if=Category themes,theme_id"`
	UsageLimit  int    `json:"usageLimit,omitempty" yaml:"usageLimit" validate:"min=0"`
	Duration    string `json:"duration,omitempty" yaml:"duration"`
}

// Matches reports whether the item's name or description contains query.
func (s ShopItem) Matches(query string) bool {
	return containsFold(query, s.Name, s.Description)
}
