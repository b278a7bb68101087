package app

import (
	"context"

	"github.com/cloudspace-consulting/survey-api/config"
	"github.com/cloudspace-consulting/survey-api/store"
)

// Store is the document database the service delegates all persistence to.
type Store interface {
	Put(ctx context.Context, collection string, item store.Item) error
	Get(ctx context.Context, collection, id string) (store.Item, error)
	Scan(ctx context.Context, collection string) ([]store.Item, error)
	Query(ctx context.Context, collection, field, value string) ([]store.Item, error)
	IncrementField(ctx context.Context, collection, id, field string) error
}

type App struct {
	Store Store
	config.Config
}
