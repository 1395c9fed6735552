// Package data defines the persisted entity types and the strongly-typed
// collection handles the rest of the core operates through.
package data

import "time"

// CardTier enumerates the rarity bands a CardReference can occupy.
type CardTier string

const (
	TierChampion  CardTier = "champion"
	TierExalted   CardTier = "exalted"
	TierCelestial CardTier = "celestial"
	TierDivine    CardTier = "divine"
	TierAscendant CardTier = "ascendant"
	TierGenesis   CardTier = "genesis"
	TierVoidborn  CardTier = "voidborn"
	TierOmega     CardTier = "omega"
)

// Player is the account and game-state root.
type Player struct {
	ID                     string    `json:"id"`
	DiscordID              int64     `json:"discordId,omitempty"`
	DisplayName            string    `json:"displayName"`
	Email                  string    `json:"email"`
	PasswordHash           string    `json:"passwordHash"`
	Cards                  []string  `json:"cards"`
	Decks                  [][]string `json:"decks"`
	Items                  []string  `json:"items"`
	PityScore              int32     `json:"pityScore"`
	Essence                int64     `json:"essence"`
	DailyBattleTimer       time.Time `json:"dailyBattleTimer"`
	DailyFreePackTimer     time.Time `json:"dailyFreePackTimer"`
	Friends                []string  `json:"friends"`
	FriendRequestsSent     []string  `json:"friendRequestsSent"`
	FriendRequestsReceived []string  `json:"friendRequestsReceived"`
	LastLoginAt            time.Time `json:"lastLoginAt"`
}

func (p *Player) GetID() string    { return p.ID }
func (p *Player) SetID(id string)  { p.ID = id }

// NewPlayer builds a default-valued player for auto-provisioning paths
// (registration, find-or-create by Discord id).
func NewPlayer() *Player {
	return &Player{
		Cards:                  []string{},
		Decks:                  [][]string{},
		Items:                  []string{},
		Friends:                []string{},
		FriendRequestsSent:     []string{},
		FriendRequestsReceived: []string{},
	}
}

// CardReference is a catalog entry shared across the fleet. numAcquired is
// monotonic and mutated only by the pack-open path.
type CardReference struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CharacterID   string   `json:"characterId"`
	SetID         string   `json:"setId"`
	Tier          CardTier `json:"tier"`
	Image         string   `json:"image"`
	AbilityID     string   `json:"abilityId"`
	NumAcquired   int32    `json:"numAcquired"`
	LastSalePrice int32    `json:"lastSalePrice"`
}

func (r *CardReference) GetID() string   { return r.ID }
func (r *CardReference) SetID(id string) { r.ID = id }

// CardObject is a single owned instance of a CardReference.
type CardObject struct {
	ID                  string    `json:"id"`
	CardReferenceID     string    `json:"cardReferenceId"`
	OwnerID             string    `json:"ownerId"`
	Number              int32     `json:"number"`
	AttackPoints        int32     `json:"attackPoints"`
	HealthPoints        int32     `json:"healthPoints"`
	CustomBorder        string    `json:"customBorder,omitempty"`
	OwnerHistory        []string  `json:"ownerHistory"`
	LastAcquisitionDate time.Time `json:"lastAcquisitionDate"`
}

func (o *CardObject) GetID() string   { return o.ID }
func (o *CardObject) SetID(id string) { o.ID = id }

// AbilityReference, ItemReference, CharacterReference, AnimeReference, and
// MangaReference are read-only reference documents from the core's
// perspective; supplemented beyond the distilled card/player model because
// the original catalog carries them alongside CardReference.

type AbilityReference struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Power       int32  `json:"power"`
}

func (a *AbilityReference) GetID() string   { return a.ID }
func (a *AbilityReference) SetID(id string) { a.ID = id }

type ItemReference struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (i *ItemReference) GetID() string   { return i.ID }
func (i *ItemReference) SetID(id string) { i.ID = id }

type CharacterReference struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SeriesID string `json:"seriesId"`
}

func (c *CharacterReference) GetID() string   { return c.ID }
func (c *CharacterReference) SetID(id string) { c.ID = id }

type AnimeReference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (a *AnimeReference) GetID() string   { return a.ID }
func (a *AnimeReference) SetID(id string) { a.ID = id }

type MangaReference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (m *MangaReference) GetID() string   { return m.ID }
func (m *MangaReference) SetID(id string) { m.ID = id }
