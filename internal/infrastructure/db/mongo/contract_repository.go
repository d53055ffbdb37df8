package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

const collectionContracts = "contracts"

type ContractRepository struct {
	col *mongo.Collection
	seq ports.Sequence
}

func NewContractRepository(db *mongo.Database, seq ports.Sequence) *ContractRepository {
	return &ContractRepository{col: db.Collection(collectionContracts), seq: seq}
}

func (r *ContractRepository) FindByID(ctx context.Context, id int64) (*domain.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Contract
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContractNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) FindAll(ctx context.Context) ([]*domain.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contracts := []*domain.Contract{}
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save upserts the contract, allocating an id from the sequence when it is 0.
func (r *ContractRepository) Save(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if c.ID == 0 {
		id, err := r.seq.Next(ctx, collectionContracts)
		if err != nil {
			return nil, err
		}
		c.ID = id
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, opts); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrContractNotFound
	}
	return nil
}

// EnsureIndexes creates the secondary indexes used by lookups.
func (r *ContractRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "renteeid", Value: 1}}},
		{Keys: bson.D{{Key: "itemid", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
