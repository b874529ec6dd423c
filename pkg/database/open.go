package database

import (
	"context"
	"fmt"
	"strings"

	"smartpark/pkg/utils"
)

// Open builds the DocumentStore selected by STORAGE_DRIVER.
func Open(ctx context.Context, config *utils.Config) (DocumentStore, error) {
	switch strings.ToLower(config.Storage.Driver) {
	case "", "file":
		return NewFileStore(config.Storage.Dir, config.Storage.QuotaBytes)
	case "memory":
		return NewMemoryStore(int(config.Storage.QuotaBytes)), nil
	case "postgres":
		db, err := InitDB(config.Database)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case "redis":
		return NewRedisStore(config.Redis)
	case "mongo":
		return NewMongoStore(config.Mongo)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}
}
