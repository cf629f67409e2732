package users

import (
	"github.com/gogotex/usergroups/internal/document/repository"
	"github.com/gogotex/usergroups/internal/document/service"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoRepository returns the users repository backed by db's "users" collection.
func NewMongoRepository(db *mongo.Database) *repository.MongoRepo {
	return repository.NewMongoRepo(db.Collection(Schema.Collection), Schema.UniqueFields()...)
}

// NewMemoryRepository returns an in-memory users repository enforcing email uniqueness.
func NewMemoryRepository() *repository.MemoryRepo {
	return repository.NewMemoryRepo(Schema.UniqueFields()...)
}

func NewService(repo repository.Repository, opts ...service.Option) service.Service {
	return service.New(Schema, repo, opts...)
}
