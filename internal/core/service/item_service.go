package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// ItemService implements item CRUD with ownership-gated partial updates.
type ItemService struct {
	items  ports.ItemRepository
	users  ports.UserRepository
	policy ChangePolicy
	logger zerolog.Logger
}

func NewItemService(items ports.ItemRepository, users ports.UserRepository, policy ChangePolicy, logger zerolog.Logger) *ItemService {
	if policy == nil {
		policy = AllowAll{}
	}
	return &ItemService{items: items, users: users, policy: policy, logger: logger}
}

// Save fully replaces (or creates, when id=0) an item. Name and type are
// lowercased; the lender is resolved by username.
func (s *ItemService) Save(ctx context.Context, input ports.SaveItemInput) (*domain.Item, error) {
	item := &domain.Item{
		ID:          input.ID,
		Name:        strings.ToLower(input.Name),
		Type:        strings.ToLower(input.Type),
		Description: input.Description,
		Location:    input.Location,
		Available:   input.Available,
		Rate:        input.Rate,
		Image:       input.Image,
	}

	if input.ID != 0 {
		if _, err := s.items.FindByID(ctx, input.ID); err != nil {
			return nil, err
		}
	}

	lender, err := s.users.FindByUsername(ctx, strings.ToLower(input.LenderUsername))
	if err != nil {
		return nil, err
	}
	item.LenderID = lender.ID

	saved, err := s.items.Save(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Str("item_name", item.Name).Msg("failed to save item")
		return nil, err
	}

	s.logger.Info().Int64("item_id", saved.ID).Str("item_name", saved.Name).Msg("item saved")
	return saved, nil
}

// Update overwrites only the fields present in the input. Pointer fields
// mark presence, so availability can be set to false and rate to 0.
func (s *ItemService) Update(ctx context.Context, input ports.UpdateItemInput) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	lender, err := s.users.FindByID(ctx, item.LenderID)
	if err != nil {
		return nil, err
	}
	target := ChangeTarget{Kind: "item", ID: item.ID, Owners: []string{lender.Username}}
	if !s.policy.CanModify(ctx, strings.ToLower(input.ActingUsername), target) {
		return nil, domain.ErrNotAuthorized
	}

	if input.Name != nil {
		item.Name = strings.ToLower(*input.Name)
	}
	if input.Type != nil {
		item.Type = strings.ToLower(*input.Type)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.Rate != nil {
		item.Rate = *input.Rate
	}
	if input.Image != nil {
		item.Image = *input.Image
	}

	saved, err := s.items.Save(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", input.ID).Msg("failed to update item")
		return nil, err
	}

	s.logger.Info().Int64("item_id", saved.ID).Msg("item updated")
	return saved, nil
}

func (s *ItemService) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *ItemService) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	return s.items.FindByName(ctx, strings.ToLower(name))
}

func (s *ItemService) FindByNameContaining(ctx context.Context, fragment string) ([]*domain.Item, error) {
	return s.items.FindByNameContaining(ctx, fragment)
}

func (s *ItemService) FindAll(ctx context.Context) ([]*domain.Item, error) {
	return s.items.FindAll(ctx)
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}
