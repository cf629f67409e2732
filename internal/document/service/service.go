package service

import (
	"context"
	"errors"

	"github.com/gogotex/usergroups/internal/document"
	"github.com/gogotex/usergroups/internal/document/repository"
	"github.com/gogotex/usergroups/internal/schema"
	"github.com/gogotex/usergroups/pkg/logger"
	"github.com/gogotex/usergroups/pkg/metrics"
)

// Service defines the entity operations used by the handler layer. Expected
// client-side failures come back as a tagged document.Outcome; the error
// return is reserved for storage faults.
type Service interface {
	Schema() schema.Schema
	Create(ctx context.Context, payload map[string]interface{}) (document.Outcome, error)
	List(ctx context.Context) (document.Outcome, error)
	Get(ctx context.Context, id string) (document.Outcome, error)
	Update(ctx context.Context, id string, payload map[string]interface{}) (document.Outcome, error)
	Delete(ctx context.Context, id string) (document.Outcome, error)
}

// Cache is the optional get-by-id cache consulted by Get and invalidated by
// writes. Lease is taken before storage is read and Fill only stores the
// document while that lease still holds, so an invalidation racing the fill wins.
type Cache interface {
	Get(ctx context.Context, id string) (document.Document, bool, error)
	Lease(ctx context.Context, id string) (string, error)
	Fill(ctx context.Context, d document.Document, token string) error
	Delete(ctx context.Context, id string) error
}

type Option func(*entityService)

// WithCache enables the get-by-id cache.
func WithCache(c Cache) Option {
	return func(s *entityService) { s.cache = c }
}

// New returns a Service validating against sch and persisting through repo.
func New(sch schema.Schema, repo repository.Repository, opts ...Option) Service {
	s := &entityService{schema: sch, repo: repo}
	for _, o := range opts {
		o(s)
	}
	return s
}

type entityService struct {
	schema schema.Schema
	repo   repository.Repository
	cache  Cache
}

func (s *entityService) Schema() schema.Schema { return s.schema }

func (s *entityService) record(op string, out document.Outcome, err error) (document.Outcome, error) {
	label := out.Status.String()
	if err != nil {
		label = "error"
	}
	metrics.Operations.WithLabelValues(s.schema.Collection, op, label).Inc()
	return out, err
}

// storeErr converts repository sentinel errors into outcomes.
func (s *entityService) storeErr(err error) (document.Outcome, error) {
	var dup *repository.DuplicateError
	switch {
	case errors.As(err, &dup):
		return document.Conflict(s.schema.DuplicateMessage(dup.Fields)), nil
	case errors.Is(err, repository.ErrInvalidID):
		return document.InvalidID(), nil
	case errors.Is(err, repository.ErrNotFound):
		return document.NotFound(), nil
	}
	return document.Outcome{}, err
}

func (s *entityService) Create(ctx context.Context, payload map[string]interface{}) (document.Outcome, error) {
	d := s.schema.Sanitize(payload)
	if res := s.schema.Validate(d); !res.OK() {
		return s.record("create", document.ValidationFailed(res.Message()), nil)
	}
	created, err := s.repo.Insert(ctx, d)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("create", out, err)
	}
	return s.record("create", document.Created(created), nil)
}

func (s *entityService) List(ctx context.Context) (document.Outcome, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return s.record("list", document.Outcome{}, err)
	}
	return s.record("list", document.Listed(list), nil)
}

func (s *entityService) Get(ctx context.Context, id string) (document.Outcome, error) {
	id, err := repository.CanonicalID(id)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("get", out, err)
	}
	var lease string
	if s.cache != nil {
		if d, ok := s.cachedGet(ctx, id); ok {
			return s.record("get", document.Found(d), nil)
		}
		if lease, err = s.cache.Lease(ctx, id); err != nil {
			logger.Warnf("cache lease %s/%s: %v", s.schema.Collection, id, err)
		}
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("get", out, err)
	}
	if lease != "" {
		if err := s.cache.Fill(ctx, d, lease); err != nil {
			logger.Warnf("cache fill %s/%s: %v", s.schema.Collection, id, err)
		}
	}
	return s.record("get", document.Found(d), nil)
}

func (s *entityService) cachedGet(ctx context.Context, id string) (document.Document, bool) {
	d, ok, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		logger.Warnf("cache get %s/%s: %v", s.schema.Collection, id, err)
		metrics.CacheLookups.WithLabelValues(s.schema.Collection, "error").Inc()
		return nil, false
	case !ok:
		metrics.CacheLookups.WithLabelValues(s.schema.Collection, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(s.schema.Collection, "hit").Inc()
	return d, true
}

// Update merges the supplied fields into the stored document and re-validates
// the result before anything is written.
func (s *entityService) Update(ctx context.Context, id string, payload map[string]interface{}) (document.Outcome, error) {
	id, err := repository.CanonicalID(id)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("update", out, err)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("update", out, err)
	}
	patch := s.schema.Sanitize(payload)
	if res := s.schema.Validate(current.Merge(patch)); !res.OK() {
		return s.record("update", document.ValidationFailed(res.Message()), nil)
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("update", out, err)
	}
	s.invalidate(ctx, id)
	return s.record("update", document.Found(updated), nil)
}

func (s *entityService) Delete(ctx context.Context, id string) (document.Outcome, error) {
	id, err := repository.CanonicalID(id)
	if err != nil {
		out, err := s.storeErr(err)
		return s.record("delete", out, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		out, err := s.storeErr(err)
		return s.record("delete", out, err)
	}
	s.invalidate(ctx, id)
	return s.record("delete", document.Deleted(), nil)
}

func (s *entityService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Warnf("cache invalidate %s/%s: %v", s.schema.Collection, id, err)
	}
}
