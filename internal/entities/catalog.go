package entities

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Editorial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:150;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"index;size:100;not null" json:"name"`
	FirstSurname  string    `gorm:"size:100" json:"first_surname"`
	SecondSurname string    `gorm:"size:100" json:"second_surname,omitempty"`
	Books         []Book    `gorm:"many2many:book_authors;" json:"books,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Book struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ISBN          string        `gorm:"uniqueIndex;size:32;not null" json:"isbn"` // Stored without whitespace
	Title         string        `gorm:"index;size:255;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	PublishedDate time.Time     `json:"published_date"`
	CategoryID    uint          `gorm:"index;not null" json:"category_id"`
	EditorialID   uint          `gorm:"index;not null" json:"editorial_id"`
	Category      *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Editorial     *Editorial    `gorm:"foreignKey:EditorialID" json:"editorial,omitempty"`
	Authors       []Author      `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	Download      *BookDownload `gorm:"foreignKey:BookID" json:"book_download,omitempty"`
	Reviews       []BookReview  `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookAuthor is the join row of the book <-> author association.
// The composite primary key keeps the pair set free of duplicates.
type BookAuthor struct {
	BookID   uint `gorm:"primaryKey;autoIncrement:false"`
	AuthorID uint `gorm:"primaryKey;autoIncrement:false"`
}

// BookDownload tracks downloads of a book. Exactly one exists per book.
type BookDownload struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BookID         uint      `gorm:"uniqueIndex;not null" json:"book_id"`
	TotalDownloads uint64    `gorm:"not null;default:0" json:"total_downloads"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookReview is a user's comment on a book; one per (book, user) pair.
type BookReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Edited    bool      `gorm:"not null;default:false" json:"edited"`
	BookID    uint      `gorm:"uniqueIndex:idx_book_reviews_book_user;not null" json:"book_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_book_reviews_book_user;index;not null" json:"user_id"`
	Book      *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (Editorial) TableName() string {
	return "editorials"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookDownload) TableName() string {
	return "book_downloads"
}

func (BookReview) TableName() string {
	return "book_reviews"
}
