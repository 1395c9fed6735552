package data

import (
	"context"
	"fmt"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/docstore"
)

// Collection names match the persisted-state layout exactly, including the
// hyphenated ability-reference table.
const (
	collectionPlayers           = "players"
	collectionCardReferences    = "card_references"
	collectionCardObjects       = "card_objects"
	collectionAbilityReferences = "card-abilities"
	collectionItemReferences    = "item_references"
	collectionCharacterRefs     = "character_references"
	collectionAnimeReferences   = "anime_references"
	collectionMangaReferences   = "manga_references"
)

// Service exposes typed, strongly-named collection handles plus the canned
// lookups the rest of the core calls rather than building raw queries.
// A Service is constructed once at startup and passed by reference into
// every component that needs it — there is no process-wide singleton.
type Service struct {
	Players           *docstore.Collection[*Player]
	CardReferences    *docstore.Collection[*CardReference]
	CardObjects       *docstore.Collection[*CardObject]
	AbilityReferences *docstore.Collection[*AbilityReference]
	ItemReferences    *docstore.Collection[*ItemReference]
	CharacterRefs     *docstore.Collection[*CharacterReference]
	AnimeReferences   *docstore.Collection[*AnimeReference]
	MangaReferences   *docstore.Collection[*MangaReference]
}

// NewService opens every collection against store.
func NewService(store *docstore.Store) (*Service, error) {
	players, err := docstore.NewCollection[*Player](store, collectionPlayers)
	if err != nil {
		return nil, err
	}
	cardRefs, err := docstore.NewCollection[*CardReference](store, collectionCardReferences)
	if err != nil {
		return nil, err
	}
	cardObjs, err := docstore.NewCollection[*CardObject](store, collectionCardObjects)
	if err != nil {
		return nil, err
	}
	abilityRefs, err := docstore.NewCollection[*AbilityReference](store, collectionAbilityReferences)
	if err != nil {
		return nil, err
	}
	itemRefs, err := docstore.NewCollection[*ItemReference](store, collectionItemReferences)
	if err != nil {
		return nil, err
	}
	charRefs, err := docstore.NewCollection[*CharacterReference](store, collectionCharacterRefs)
	if err != nil {
		return nil, err
	}
	animeRefs, err := docstore.NewCollection[*AnimeReference](store, collectionAnimeReferences)
	if err != nil {
		return nil, err
	}
	mangaRefs, err := docstore.NewCollection[*MangaReference](store, collectionMangaReferences)
	if err != nil {
		return nil, err
	}

	return &Service{
		Players:           players,
		CardReferences:    cardRefs,
		CardObjects:       cardObjs,
		AbilityReferences: abilityRefs,
		ItemReferences:    itemRefs,
		CharacterRefs:     charRefs,
		AnimeReferences:   animeRefs,
		MangaReferences:   mangaRefs,
	}, nil
}

// FindOrCreatePlayerByDiscordID finds the player with the given Discord id,
// or provisions a new one with default fields if none exists.
func (s *Service) FindOrCreatePlayerByDiscordID(ctx context.Context, discordID int64) (*Player, error) {
	existing, ok, err := s.Players.FindOne(ctx, docstore.Eq("discordId", discordID))
	if err != nil {
		return nil, apperr.Backend(fmt.Errorf("find player by discord id: %w", err))
	}
	if ok {
		return existing, nil
	}

	p := NewPlayer()
	p.DiscordID = discordID
	if _, err := s.Players.InsertOne(ctx, p); err != nil {
		return nil, apperr.Backend(fmt.Errorf("insert player: %w", err))
	}
	return p, nil
}

// FindPlayerByEmail returns the player with the given email, or
// (nil, false) if none exists.
func (s *Service) FindPlayerByEmail(ctx context.Context, email string) (*Player, bool, error) {
	p, ok, err := s.Players.FindOne(ctx, docstore.Eq("email", email))
	if err != nil {
		return nil, false, apperr.Backend(fmt.Errorf("find player by email: %w", err))
	}
	return p, ok, nil
}

// FindPlayerByDisplayName returns the player with the given display name,
// or (nil, false) if none exists.
func (s *Service) FindPlayerByDisplayName(ctx context.Context, name string) (*Player, bool, error) {
	p, ok, err := s.Players.FindOne(ctx, docstore.Eq("displayName", name))
	if err != nil {
		return nil, false, apperr.Backend(fmt.Errorf("find player by display name: %w", err))
	}
	return p, ok, nil
}

// FindPlayerByID returns the player with the given id, or (nil, false) if
// none exists.
func (s *Service) FindPlayerByID(ctx context.Context, id string) (*Player, bool, error) {
	p, ok, err := s.Players.FindOne(ctx, docstore.ByID(id))
	if err != nil {
		return nil, false, apperr.Backend(fmt.Errorf("find player by id: %w", err))
	}
	return p, ok, nil
}
