package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/entities"
)

func bookIDsOf(author *entities.Author) []uint {
	ids := make([]uint, 0, len(author.Books))
	for _, b := range author.Books {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestAuthorLifecycle(t *testing.T) {
	svc, db, f := setupService(t)
	ctx := context.Background()

	b1, err := svc.CreateBook(ctx, actor, bookInput(f, "a1", f.authorA))
	require.NoError(t, err)
	b2, err := svc.CreateBook(ctx, actor, bookInput(f, "a2", f.authorA))
	require.NoError(t, err)
	b3, err := svc.CreateBook(ctx, actor, bookInput(f, "a3", f.authorA))
	require.NoError(t, err)

	author, err := svc.CreateAuthor(ctx, actor, AuthorInput{
		Name:          "Gabriel",
		FirstSurname:  "Garcia",
		SecondSurname: "Marquez",
		Books:         []IDRef{{ID: b1.ID}, {ID: b3.ID}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b1.ID, b3.ID}, bookIDsOf(author))

	name := "Gabo"
	updated, err := svc.UpdateAuthor(ctx, actor, author.ID, AuthorPatch{
		Name:  &name,
		Books: []IDRef{{ID: b1.ID}, {ID: b2.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gabo", updated.Name)
	assert.Equal(t, "Garcia", updated.FirstSurname)
	assert.ElementsMatch(t, []uint{b1.ID, b2.ID}, bookIDsOf(updated))

	deleted, err := svc.DeleteAuthor(ctx, actor, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, deleted.ID)
	assert.Equal(t, int64(0), count(t, db, &entities.BookAuthor{}, "author_id = ?", author.ID))
	assert.Equal(t, int64(3), count(t, db, &entities.Book{}, ""))

	_, err = svc.GetAuthor(ctx, author.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateAuthor_UnknownBook(t *testing.T) {
	svc, db, _ := setupService(t)

	_, err := svc.CreateAuthor(context.Background(), actor, AuthorInput{
		Name:         "Nobody",
		FirstSurname: "Known",
		Books:        []IDRef{{ID: 404}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, int64(3), count(t, db, &entities.Author{}, ""))
}

func TestUpdateAuthor_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.UpdateAuthor(context.Background(), actor, 404, AuthorPatch{})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = svc.DeleteAuthor(context.Background(), actor, 404)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListAuthors_OrderedByName(t *testing.T) {
	svc, _, _ := setupService(t)

	list, err := svc.ListAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Carla", list[2].Name)
}

func TestLookups(t *testing.T) {
	svc, _, f := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, actor, LookupInput{Name: "Fiction"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	_, err = svc.CreateEditorial(ctx, actor, LookupInput{Name: "Penguin"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	category, err := svc.GetCategory(ctx, f.category)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", category.Name)

	_, err = svc.GetEditorial(ctx, 999)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	editorials, err := svc.ListEditorials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anagrama", editorials[0].Name)
}
