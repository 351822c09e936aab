package books

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

type fixture struct {
	db      *gorm.DB
	repo    *Repository
	book    *entities.Book
	authors []entities.Author
}

func setupTestDB(t *testing.T) fixture {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "books.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	category := &entities.Category{Name: "Fiction"}
	require.NoError(t, db.DB.Create(category).Error)
	editorial := &entities.Editorial{Name: "Penguin"}
	require.NoError(t, db.DB.Create(editorial).Error)

	authors := []entities.Author{
		{Name: "Carla", FirstSurname: "Perez"},
		{Name: "Ana", FirstSurname: "Perez"},
		{Name: "Bruno", FirstSurname: "Perez"},
	}
	require.NoError(t, db.DB.Create(&authors).Error)

	repo := NewRepository(db.DB)
	book := &entities.Book{
		ISBN:          "978013",
		Title:         "X",
		PublishedDate: time.Now(),
		CategoryID:    category.ID,
		EditorialID:   editorial.ID,
	}
	require.NoError(t, repo.CreateBook(book))

	return fixture{db: db.DB, repo: repo, book: book, authors: authors}
}

func TestRepository_ISBNTaken(t *testing.T) {
	f := setupTestDB(t)

	taken, err := f.repo.ISBNTaken("978013", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = f.repo.ISBNTaken("978013", f.book.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a book does not collide with itself")

	taken, err = f.repo.ISBNTaken("111", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_AuthorAssociation(t *testing.T) {
	f := setupTestDB(t)
	a, b, c := f.authors[0].ID, f.authors[1].ID, f.authors[2].ID

	require.NoError(t, f.repo.AttachAuthors(f.book.ID, []uint{c, a}))
	ids, err := f.repo.AuthorIDs(f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a, c}, ids)

	err = f.repo.AttachAuthors(f.book.ID, []uint{a})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), "pairs are unique")

	require.NoError(t, f.repo.DetachAuthors(f.book.ID, []uint{c}))
	require.NoError(t, f.repo.AttachAuthors(f.book.ID, []uint{b}))

	book, err := f.repo.GetBookByID(f.book.ID)
	require.NoError(t, err)
	require.Len(t, book.Authors, 2)
	// Ordered by name
	assert.Equal(t, "Ana", book.Authors[0].Name)
	assert.Equal(t, "Carla", book.Authors[1].Name)

	require.NoError(t, f.repo.DetachAllAuthors(f.book.ID))
	ids, err = f.repo.AuthorIDs(f.book.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRepository_Downloads(t *testing.T) {
	f := setupTestDB(t)

	_, err := f.repo.IncrementDownloads(f.book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = f.repo.CreateDownload(f.book.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.repo.IncrementDownloads(f.book.ID)
		require.NoError(t, err)
	}

	download, err := f.repo.GetDownload(f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), download.TotalDownloads)

	_, err = f.repo.CreateDownload(f.book.ID)
	assert.True(t, database.IsUniqueViolation(err), "one download record per book")

	require.NoError(t, f.repo.DeleteDownload(f.book.ID))
	_, err = f.repo.GetDownload(f.book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetAllBooksOrderedByTitle(t *testing.T) {
	f := setupTestDB(t)

	second := &entities.Book{
		ISBN:          "222",
		Title:         "A first",
		PublishedDate: time.Now(),
		CategoryID:    f.book.CategoryID,
		EditorialID:   f.book.EditorialID,
	}
	require.NoError(t, f.repo.CreateBook(second))

	books, err := f.repo.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A first", books[0].Title)
	assert.NotNil(t, books[0].Category)
	assert.NotNil(t, books[0].Editorial)
}
