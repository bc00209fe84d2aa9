// Package stream applies DynamoDB Streams change records to entity stores.
package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/jacentio/entitystore/store"
)

// Stream event names.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// Applier applies a single stream record.
type Applier interface {
	Apply(record events.DynamoDBEventRecord) error
}

// Sync keeps an EntityStore in step with a table's stream.
// Apply and Snapshot may be called from multiple goroutines.
type Sync[E any] struct {
	mu     sync.Mutex
	store  *store.EntityStore[E]
	config Config
	now    func() time.Time
}

// NewSync creates a Sync that applies records to s.
func NewSync[E any](s *store.EntityStore[E], config Config) *Sync[E] {
	config.validate()
	return &Sync[E]{
		store:  s,
		config: config,
		now:    time.Now,
	}
}

// Snapshot returns the current state of the underlying store.
func (s *Sync[E]) Snapshot() *store.State[E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// Apply applies one record. INSERT and MODIFY upsert the new image, or remove
// the entity when the image is soft-deleted. REMOVE drops the entity named by
// the old image or keys. Other event names are ignored.
func (s *Sync[E]) Apply(record events.DynamoDBEventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch record.EventName {
	case EventInsert, EventModify:
		image := record.Change.NewImage
		if len(image) == 0 {
			return fmt.Errorf("%s: %w", record.EventName, ErrMissingImage)
		}
		entity, id, err := s.decode(image)
		if err != nil {
			return err
		}
		if IsDeleted(image, s.config.TTLAttribute, s.now()) {
			s.store.Remove(id)
			return nil
		}
		s.store.Upsert(entity)

	case EventRemove:
		image := record.Change.OldImage
		if len(image) == 0 {
			image = record.Change.Keys
		}
		if len(image) == 0 {
			return fmt.Errorf("%s: %w", record.EventName, ErrMissingImage)
		}
		_, id, err := s.decode(image)
		if err != nil {
			return err
		}
		s.store.Remove(id)
	}
	return nil
}

// decode unmarshals an image into an entity and extracts its identifier.
func (s *Sync[E]) decode(image map[string]events.DynamoDBAttributeValue) (E, any, error) {
	var entity E
	if err := attributevalue.UnmarshalMap(ConvertImage(image), &entity); err != nil {
		return entity, nil, fmt.Errorf("unmarshal image: %w", err)
	}
	id := s.store.IDOf(entity)
	if !store.ValidID(id) {
		return entity, nil, ErrMissingID
	}
	return entity, id, nil
}
