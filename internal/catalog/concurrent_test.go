package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/entities"
)

func createBooksConcurrently(svc *Service, inputs []BookInput) []error {
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in BookInput) {
			defer wg.Done()
			_, errs[i] = svc.CreateBook(context.Background(), actor, in)
		}(i, in)
	}
	wg.Wait()
	return errs
}

func TestCreateBook_ConcurrentDistinctISBNs(t *testing.T) {
	svc, db, f := setupService(t)

	inputs := make([]BookInput, 16)
	for i := range inputs {
		inputs[i] = bookInput(f, fmt.Sprintf("978-%04d", i), f.authorA)
	}

	for i, err := range createBooksConcurrently(svc, inputs) {
		assert.NoError(t, err, "book %d", i)
	}
	assert.Equal(t, int64(16), count(t, db, &entities.Book{}, ""))
	assert.Equal(t, int64(16), count(t, db, &entities.BookDownload{}, ""))
}

func TestCreateBook_ConcurrentSameISBN(t *testing.T) {
	svc, db, f := setupService(t)

	inputs := make([]BookInput, 8)
	for i := range inputs {
		inputs[i] = bookInput(f, "978 0 13", f.authorA)
	}

	succeeded := 0
	for _, err := range createBooksConcurrently(svc, inputs) {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, apperrors.IsKind(err, apperrors.KindConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), count(t, db, &entities.Book{}, "isbn = ?", "978013"))
	assert.Equal(t, int64(1), count(t, db, &entities.BookDownload{}, ""))
}
