package mock

import (
	"context"

	"github.com/fwojciec/sitesnap"
)

var _ sitesnap.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of sitesnap.ContentStore.
type ContentStore struct {
	SaveFn   func(ctx context.Context, page *sitesnap.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ContentStore) Save(ctx context.Context, page *sitesnap.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *ContentStore) Commit() error {
	return s.CommitFn()
}

func (s *ContentStore) Abort() error {
	return s.AbortFn()
}
