package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartpark/pkg/database"
)

// SchemaVersion is written into every stored document.
const SchemaVersion = 1

const (
	BookingsKey     = "smartpark_bookings"
	AvailabilityKey = "smartpark_parking_availability"
	InventoryKey    = "admin_parkings"
)

// ErrUnsupportedSchema means the stored document was written by a newer release.
var ErrUnsupportedSchema = errors.New("unsupported document schema version")

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Data          json.RawMessage `json:"data"`
}

// loadDocument decodes the document under key into out. found is false when the key is absent.
func loadDocument(ctx context.Context, store database.DocumentStore, key string, out any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, database.ErrDocumentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decode %s envelope: %w", key, err)
	}
	if env.SchemaVersion > SchemaVersion {
		return false, fmt.Errorf("%s has version %d: %w", key, env.SchemaVersion, ErrUnsupportedSchema)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return true, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	return true, nil
}

func saveDocument(ctx context.Context, store database.DocumentStore, key string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	raw, err := json.Marshal(envelope{
		SchemaVersion: SchemaVersion,
		UpdatedAt:     time.Now().UTC(),
		Data:          body,
	})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}

	return store.Put(ctx, key, raw)
}
