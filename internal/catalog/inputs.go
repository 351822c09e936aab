package catalog

import "time"

// IDRef is a reference to another record by id, as sent by clients:
// {"id": 3}.
type IDRef struct {
	ID uint `json:"id" binding:"required"`
}

func refIDs(refs []IDRef) []uint {
	ids := make([]uint, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

// BookInput is the payload of a book creation.
// PublishedDate defaults to the creation time.
type BookInput struct {
	ISBN          string     `json:"isbn" binding:"required"`
	Title         string     `json:"title" binding:"required,max=255"`
	Description   string     `json:"description"`
	PublishedDate *time.Time `json:"published_date"`
	Category      *IDRef     `json:"category" binding:"required"`
	Editorial     *IDRef     `json:"editorial" binding:"required"`
	Authors       []IDRef    `json:"authors" binding:"required,min=1,dive"`
}

// BookPatch is a partial book update. Nil fields are left untouched.
// A non-nil Authors, even empty, replaces the author set.
type BookPatch struct {
	ISBN          *string    `json:"isbn" binding:"omitempty,min=1"`
	Title         *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string    `json:"description"`
	PublishedDate *time.Time `json:"published_date"`
	Category      *IDRef     `json:"category"`
	Editorial     *IDRef     `json:"editorial"`
	Authors       []IDRef    `json:"authors" binding:"omitempty,dive"`
}

type AuthorInput struct {
	Name          string  `json:"name" binding:"required,max=100"`
	FirstSurname  string  `json:"first_surname" binding:"required,max=100"`
	SecondSurname string  `json:"second_surname" binding:"max=100"`
	Books         []IDRef `json:"books" binding:"omitempty,dive"`
}

// AuthorPatch is a partial author update. A non-nil Books replaces the
// book set.
type AuthorPatch struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	FirstSurname  *string `json:"first_surname" binding:"omitempty,min=1,max=100"`
	SecondSurname *string `json:"second_surname" binding:"omitempty,max=100"`
	Books         []IDRef `json:"books" binding:"omitempty,dive"`
}

type ReviewInput struct {
	Comment string `json:"comment" binding:"required"`
	Book    *IDRef `json:"book" binding:"required"`
}

type ReviewPatch struct {
	Comment string `json:"comment" binding:"required"`
}

// LookupInput creates a category or an editorial.
type LookupInput struct {
	Name string `json:"name" binding:"required,max=100"`
}
