// Package seed loads the sample fighter roster and bootstraps administrators.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

func ptr[T any](v T) *T { return &v }

// Fighters is the sample roster.
func Fighters() []models.Fighter {
	return []models.Fighter{
		{
			FirstName: "Conor",
			LastName:  "McGregor",
			Nickname:  ptr("The Notorious"),
			HeightCM:  ptr(175),
			ReachCM:   ptr(188),
			Stance:    ptr("Southpaw"),
			Wins:      22,
			Losses:    6,
		},
		{
			FirstName: "Khabib",
			LastName:  "Nurmagomedov",
			Nickname:  ptr("The Eagle"),
			HeightCM:  ptr(178),
			ReachCM:   ptr(178),
			Stance:    ptr("Orthodox"),
			Wins:      29,
		},
	}
}

// SeedFighters inserts every roster entry whose full name is not stored yet
// and returns how many were created.
func SeedFighters(ctx context.Context, store storage.FighterStore, roster []models.Fighter, logger zerolog.Logger) (int, error) {
	existing, err := names(ctx, store)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, f := range roster {
		key := f.FirstName + " " + f.LastName
		if existing[key] {
			logger.Debug().Str("fighter", key).Msg("already seeded")
			continue
		}
		saved, err := store.CreateFighter(ctx, f)
		if err != nil {
			return created, fmt.Errorf("seed fighter %s: %w", key, err)
		}
		existing[key] = true
		created++
		logger.Info().Int64("fighter_id", saved.ID).Str("fighter", key).Msg("fighter seeded")
	}
	return created, nil
}

func names(ctx context.Context, store storage.FighterStore) (map[string]bool, error) {
	out := map[string]bool{}
	page := storage.DefaultPage
	for {
		batch, err := store.ListFighters(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("list fighters: %w", err)
		}
		for _, f := range batch {
			out[f.FirstName+" "+f.LastName] = true
		}
		if len(batch) < page.Limit {
			return out, nil
		}
		page.Skip += page.Limit
	}
}

// Promote grants the admin role to an existing account.
func Promote(ctx context.Context, accounts storage.AccountStore, username string) (models.Account, error) {
	account, err := accounts.FindByUsername(ctx, username)
	if err != nil {
		return models.Account{}, fmt.Errorf("find account %q: %w", username, err)
	}
	if account.Role == models.RoleAdmin {
		return account, nil
	}
	updated, err := accounts.UpdateRole(ctx, account.ID, models.RoleAdmin)
	if err != nil {
		return models.Account{}, fmt.Errorf("promote %q: %w", username, err)
	}
	return updated, nil
}
