package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/repository"
)

const countersCollection = "counters"

// MongoDBRepository owns the client backing every ledger collection.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects, pings and returns a repository bound to dbName.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri).SetRegistry(NewRegistry())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Ledger exposes one typed collection per entity.
func (r *MongoDBRepository) Ledger() repository.Ledger {
	return repository.Ledger{
		Weavers:        NewCollection[models.Weaver](r.db, repository.CollectionWeavers),
		Designs:        NewCollection[models.Design](r.db, repository.CollectionDesigns),
		ProductionLogs: NewCollection[models.ProductionLog](r.db, repository.CollectionProductionLogs),
		Loans:          NewCollection[models.Loan](r.db, repository.CollectionLoans),
		Repayments:     NewCollection[models.Repayment](r.db, repository.CollectionRepayments),
		RentalPayments: NewCollection[models.RentalPayment](r.db, repository.CollectionRentalPayments),
		AuditLogs:      &AuditCollection{coll: NewCollection[models.AuditLog](r.db, repository.CollectionAuditLogs)},
	}
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Collection stores one entity type, using the entity id as _id.
type Collection[T repository.Entity[T]] struct {
	db   *mongo.Database
	name string
}

// NewCollection binds a typed collection.
func NewCollection[T repository.Entity[T]](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) coll() *mongo.Collection {
	return c.db.Collection(c.name)
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	cur, err := c.coll().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := c.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, fmt.Errorf("%s %d: %w", c.name, id, models.ErrNotFound)
	}
	if err != nil {
		return out, fmt.Errorf("find %s %d: %w", c.name, id, err)
	}
	return out, nil
}

func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	id, err := c.nextID(ctx)
	if err != nil {
		return record, err
	}

	stored := record.WithID(id)
	if _, err := c.coll().InsertOne(ctx, stored); err != nil {
		return record, fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}
	return stored, nil
}

func (c *Collection[T]) Update(ctx context.Context, record T) error {
	id := record.EntityID()
	res, err := c.coll().ReplaceOne(ctx, bson.M{"_id": id}, record)
	if err != nil {
		return fmt.Errorf("replace %s %d: %w", c.name, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %d: %w", c.name, id, models.ErrNotFound)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	res, err := c.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c.name, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %d: %w", c.name, id, models.ErrNotFound)
	}
	return nil
}

// nextID increments the per-collection counter document.
func (c *Collection[T]) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := c.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": c.name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", c.name, err)
	}
	return counter.Seq, nil
}

// AuditCollection exposes only append and list on the history collection.
type AuditCollection struct {
	coll *Collection[models.AuditLog]
}

func (a *AuditCollection) Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error) {
	return a.coll.Create(ctx, entry)
}

func (a *AuditCollection) List(ctx context.Context) ([]models.AuditLog, error) {
	return a.coll.List(ctx)
}
