package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type ref struct {
	ID uint `json:"id" binding:"required"`
}

type signupRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
}

type shelfRequest struct {
	Title   string `json:"title" binding:"required,max=5"`
	Book    *ref   `json:"book" binding:"required"`
	Authors []ref  `json:"authors" binding:"required,min=1,dive"`
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.KindValidation, appErr.Kind)
	return appErr.Fields
}

// bindStruct sends input as a JSON body and binds it into a fresh value of
// the same type.
func bindStruct(t *testing.T, input any) error {
	t.Helper()
	payload, err := json.Marshal(input)
	require.NoError(t, err)
	target := reflect.New(reflect.TypeOf(input).Elem()).Interface()
	return bindRequest(string(payload), target)
}

func TestBind_Valid(t *testing.T) {
	err := bindStruct(t, &signupRequest{
		Name:                 "Ann",
		Email:                "a@b.com",
		Password:             "p",
		PasswordConfirmation: "p",
	})
	assert.NoError(t, err)
}

func TestBind_Messages(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  map[string][]string
	}{
		{
			name:  "missing fields use json names",
			input: &signupRequest{Password: "p", PasswordConfirmation: "p"},
			want: map[string][]string{
				"name":  {"The name field is required."},
				"email": {"The email field is required."},
			},
		},
		{
			name:  "bad email and confirmation mismatch",
			input: &signupRequest{Name: "Ann", Email: "nope", Password: "p", PasswordConfirmation: "q"},
			want: map[string][]string{
				"email":                 {"The email must be a valid email address."},
				"password_confirmation": {"The password confirmation does not match."},
			},
		},
		{
			name:  "nested reference without id",
			input: &shelfRequest{Title: "ok", Book: &ref{}, Authors: []ref{{ID: 1}, {}}},
			want: map[string][]string{
				"book.id":       {"The book.id field is required."},
				"authors[1].id": {"The authors[1].id field is required."},
			},
		},
		{
			name:  "missing reference and empty list",
			input: &shelfRequest{Title: "too long", Authors: []ref{}},
			want: map[string][]string{
				"title":   {"The title may not be greater than 5 characters."},
				"book":    {"The book field is required."},
				"authors": {"The authors must have at least 1 items."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldsOf(t, bindStruct(t, tt.input)))
		})
	}
}

func bindRequest(body string, obj any) error {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, obj)
}

func TestBind(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		var req shelfRequest
		err := bindRequest(`{"title":"Dune","book":{"id":3},"authors":[{"id":1}]}`, &req)
		require.NoError(t, err)
		assert.Equal(t, uint(3), req.Book.ID)
	})

	t.Run("malformed json", func(t *testing.T) {
		var req shelfRequest
		fields := fieldsOf(t, bindRequest(`{"title":`, &req))
		assert.Contains(t, fields, "body")
	})

	t.Run("bad date reports the time field", func(t *testing.T) {
		var req struct {
			Title         string     `json:"title"`
			PublishedDate *time.Time `json:"published_date"`
		}
		fields := fieldsOf(t, bindRequest(`{"title":"Dune","published_date":"2020-01-01"}`, &req))
		assert.Equal(t, []string{"The published date is not a valid RFC3339 date."}, fields["published_date"])
		assert.NotContains(t, fields, "body")
	})

	t.Run("wrong type reports the field", func(t *testing.T) {
		var req shelfRequest
		fields := fieldsOf(t, bindRequest(`{"title":12}`, &req))
		assert.Equal(t, []string{"The title field has an invalid type."}, fields["title"])
	})
}
