package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/barcrafted/bar-system/internal/core/domain"
)

const (
	barsCollection      = "bars"
	favoritesCollection = "bar_favorites"
)

// BarRepository resolves bars and their favorites lists.
type BarRepository struct {
	bars      *mongo.Collection
	favorites *mongo.Collection
}

func NewBarRepository(db *mongo.Database) *BarRepository {
	return &BarRepository{
		bars:      db.Collection(barsCollection),
		favorites: db.Collection(favoritesCollection),
	}
}

type mongoBar struct {
	ID   int64  `bson:"_id"`
	Key  string `bson:"key"`
	Name string `bson:"name"`
}

type mongoFavorite struct {
	BarID      int64  `bson:"bar_id"`
	CocktailID int64  `bson:"cocktail_id"`
	Name       string `bson:"name"`
}

func (r *BarRepository) FindByKey(ctx context.Context, key string) (*domain.Bar, error) {
	return r.findOne(ctx, bson.M{"key": key})
}

func (r *BarRepository) FindByID(ctx context.Context, id int64) (*domain.Bar, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BarRepository) ListFavorites(ctx context.Context, barID int64) ([]domain.Cocktail, error) {
	cur, err := r.favorites.Find(ctx, bson.M{"bar_id": barID})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Cocktail
	for cur.Next(ctx) {
		var mf mongoFavorite
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		out = append(out, domain.Cocktail{ID: mf.CocktailID, Name: mf.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}

func (r *BarRepository) findOne(ctx context.Context, filter bson.M) (*domain.Bar, error) {
	var mb mongoBar
	if err := r.bars.FindOne(ctx, filter).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBarNotFound
		}
		return nil, fmt.Errorf("find bar: %w", err)
	}
	return &domain.Bar{ID: mb.ID, Key: mb.Key, Name: mb.Name}, nil
}
