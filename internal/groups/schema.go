// Package groups defines the Group entity.
package groups

import (
	"github.com/gogotex/usergroups/internal/document/repository"
	"github.com/gogotex/usergroups/internal/document/service"
	"github.com/gogotex/usergroups/internal/schema"
	"go.mongodb.org/mongo-driver/mongo"
)

var Schema = schema.Schema{
	Name:       "Group",
	Collection: "groups",
	Rules: []schema.Rule{
		{Field: "groupname", Required: true, MinLength: 3, MaxLength: 50},
	},
}

func NewMongoRepository(db *mongo.Database) *repository.MongoRepo {
	return repository.NewMongoRepo(db.Collection(Schema.Collection), Schema.UniqueFields()...)
}

func NewMemoryRepository() *repository.MemoryRepo {
	return repository.NewMemoryRepo(Schema.UniqueFields()...)
}

func NewService(repo repository.Repository, opts ...service.Option) service.Service {
	return service.New(Schema, repo, opts...)
}
