package eventstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEventStore is the SQL event log. One row per event; the unique
// (aggregate_type, aggregate_id, sequence) index is the last line of
// defence against two writers appending the same version.
type GormEventStore struct {
	db         *gorm.DB
	serializer Serializer
}

// NewGormEventStore creates a new GORM-backed event store
func NewGormEventStore(db *gorm.DB, serializer Serializer) *GormEventStore {
	return &GormEventStore{db: db, serializer: serializer}
}

// Append implements shared.EventStore
func (s *GormEventStore) Append(ctx context.Context, key shared.Key, expectedVersion int, events []shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := checkBatch(key, events); err != nil {
		return err
	}

	restore := func() {}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current int64
		err := tx.Model(&models.DomainEventModel{}).
			Select("COALESCE(MAX(sequence), 0)").
			Where("aggregate_type = ? AND aggregate_id = ?", key.Type, key.ID).
			Scan(&current).Error
		if err != nil {
			return fmt.Errorf("read stream version: %w", err)
		}
		if int(current) != expectedVersion {
			return shared.NewConcurrencyConflictError(key, expectedVersion, int(current))
		}

		restore = assignSequences(expectedVersion, events)
		rows := make([]models.DomainEventModel, len(events))
		for i, e := range events {
			payload, err := s.serializer.Serialize(e)
			if err != nil {
				return err
			}
			rows[i] = models.DomainEventModel{
				EventID:       e.EventID(),
				AggregateType: key.Type,
				AggregateID:   key.ID,
				Sequence:      e.Sequence(),
				EventType:     e.EventType(),
				SchemaVersion: e.SchemaVersion(),
				Payload:       payload,
				OccurredAt:    e.OccurredAt(),
			}
		}
		return tx.Create(&rows).Error
	})
	if err == nil {
		return nil
	}
	restore()
	if isDuplicate(err) {
		return shared.NewConcurrencyConflictError(key, expectedVersion, expectedVersion+1)
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return fmt.Errorf("append %s: %w", key, err)
}

// ReadHistory implements shared.EventStore
func (s *GormEventStore) ReadHistory(ctx context.Context, key shared.Key) ([]shared.DomainEvent, error) {
	var rows []models.DomainEventModel
	err := s.db.WithContext(ctx).
		Where("aggregate_type = ? AND aggregate_id = ?", key.Type, key.ID).
		Order("sequence ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", key, err)
	}

	events := make([]shared.DomainEvent, 0, len(rows))
	for i := range rows {
		e, err := s.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// ReadAll implements shared.EventStore. A non-positive limit reads to the end.
func (s *GormEventStore) ReadAll(ctx context.Context, afterPosition int64, limit int) ([]shared.StoredEvent, error) {
	q := s.db.WithContext(ctx).
		Where("position > ?", afterPosition).
		Order("position ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.DomainEventModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}

	out := make([]shared.StoredEvent, 0, len(rows))
	for i := range rows {
		e, err := s.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, shared.StoredEvent{Position: rows[i].Position, Event: e})
	}
	return out, nil
}

func (s *GormEventStore) decode(row *models.DomainEventModel) (shared.DomainEvent, error) {
	e, err := s.serializer.Deserialize(row.EventType, row.SchemaVersion, row.Payload)
	if err != nil {
		return nil, err
	}
	if seq, ok := e.(shared.SequencedEvent); ok {
		seq.AssignSequence(row.Sequence)
	}
	return e, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

var _ shared.EventStore = (*GormEventStore)(nil)
