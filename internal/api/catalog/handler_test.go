package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/questionbank"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
categories:
  - id: love
    name: Love & Family
    icon: heart
    description: Relationships
    questions:
      - id: meet-partner
        text: How did you meet your partner or spouse?
        variants:
          mom: How did you meet Dad?
      - id: wedding
        text: What do you remember about your wedding day?
`

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	bank, err := questionbank.Parse([]byte(testCatalog))
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(bank))
	return r
}

func TestListCategoriesResolvesVariants(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories?relationship=mom", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.QuestionCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "How did you meet Dad?", got[0].Questions[0].Text)
	assert.Equal(t, "What do you remember about your wedding day?", got[0].Questions[1].Text)
}

func TestListQuestions(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/categories/love/questions?relationship=other&custom_relationship=mom", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "How did you meet your partner or spouse?", got[0].Text)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/unknown/questions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
