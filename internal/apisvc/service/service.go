package service

import (
	"context"
	"time"

	"github.com/sgsc/sgsc-services/internal/comm"
)

// Store is the persistence contract shared by every table store.
type Store[T any, F any] interface {
	List(ctx context.Context, f F) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id string, rec *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

type validator interface {
	Validate() error
}

type defaulter interface {
	ApplyDefaults(now time.Time)
}

// Service runs the CRUD operations of one table and announces each
// successful mutation through the Notifier.
type Service[T any, F any] struct {
	table  string
	store  Store[T, F]
	notify *Notifier
	id     func(*T) string
	now    func() time.Time
}

// New builds the service of table. id extracts the primary key of a stored
// record.
func New[T any, F any](table string, store Store[T, F], notify *Notifier, id func(*T) string) *Service[T, F] {
	return &Service[T, F]{
		table:  table,
		store:  store,
		notify: notify,
		id:     id,
		now:    time.Now,
	}
}

func (s *Service[T, F]) Table() string {
	return s.table
}

func (s *Service[T, F]) List(ctx context.Context, f F) ([]T, error) {
	return s.store.List(ctx, f)
}

func (s *Service[T, F]) Get(ctx context.Context, id string) (*T, error) {
	return s.store.Get(ctx, id)
}

// Create fills server-side defaults, validates and inserts rec.
func (s *Service[T, F]) Create(ctx context.Context, rec *T) (*T, error) {
	if d, ok := any(rec).(defaulter); ok {
		d.ApplyDefaults(s.now())
	}
	if err := validate(rec); err != nil {
		return nil, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.notify.RecordChanged(ctx, s.table, comm.OpCreate, s.id(created))
	return created, nil
}

func (s *Service[T, F]) Update(ctx context.Context, id string, rec *T) (*T, error) {
	if err := validate(rec); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, id, rec)
	if err != nil {
		return nil, err
	}
	s.notify.RecordChanged(ctx, s.table, comm.OpUpdate, id)
	return updated, nil
}

// Delete removes the row immediately. There is no soft delete.
func (s *Service[T, F]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.notify.RecordChanged(ctx, s.table, comm.OpDelete, id)
	return nil
}

func validate(rec any) error {
	if v, ok := rec.(validator); ok {
		return v.Validate()
	}
	return nil
}
