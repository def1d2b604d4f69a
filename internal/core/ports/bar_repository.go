package ports

import (
	"context"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

// BarRepository resolves bars and their menu favorites.
type BarRepository interface {
	FindByKey(ctx context.Context, key string) (*domain.Bar, error)
	FindByID(ctx context.Context, id int64) (*domain.Bar, error)
	// ListFavorites returns the bar's favorite cocktails, included in the
	// staff login response.
	ListFavorites(ctx context.Context, barID int64) ([]domain.Cocktail, error)
}
