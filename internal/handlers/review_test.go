package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel_feedback_back_end/internal/cache"
	"hotel_feedback_back_end/internal/models"
	"hotel_feedback_back_end/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	inserted []models.Review
	err      error
}

func (f *fakeStore) Insert(r *models.Review) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *r)
	return nil
}

func (f *fakeStore) Recent(limit int) ([]models.Review, error)      { return nil, f.err }
func (f *fakeStore) Since(since time.Time) ([]models.Review, error) { return nil, f.err }

func newTestRouter(t *testing.T, st *fakeStore, ready bool) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := schema.Variant("standard")
	require.NoError(t, err)

	triggered := 0
	h := &ReviewHandler{
		Store:      st,
		Schema:     s,
		Ready:      func() bool { return ready },
		OnInserted: func() { triggered++ },
		Stats: func() (*cache.CachedStats, error) {
			return &cache.CachedStats{Total: 0}, nil
		},
	}

	r := gin.New()
	r.POST("/api/review", h.CreateReview)
	r.GET("/api/stats", h.GetStats)
	r.GET("/healthz", h.Health)
	return r, &triggered
}

func postReview(r *gin.Engine, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/review", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReviewSuccess(t *testing.T) {
	st := &fakeStore{}
	r, triggered := newTestRouter(t, st, true)

	w := postReview(r, gin.H{
		"room_number": "305",
		"scores":      gin.H{"cleanliness": 5, "reception": 4, "services": 3},
		"comments":    "Très bon séjour",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "305", st.inserted[0].RoomNumber)
	assert.Equal(t, 1, *triggered, "le hook de déclenchement est invoqué une fois après l'insertion")
}

func TestCreateReviewMissingDimensionIsTolerated(t *testing.T) {
	st := &fakeStore{}
	r, _ := newTestRouter(t, st, true)

	// "services" absent : dégradé en « pas de donnée », jamais rejeté
	w := postReview(r, gin.H{
		"room_number": "12",
		"scores":      gin.H{"cleanliness": 2},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, st.inserted, 1)
	assert.Nil(t, st.inserted[0].Score("services"))
}

func TestCreateReviewRejectsMissingRoom(t *testing.T) {
	st := &fakeStore{}
	r, triggered := newTestRouter(t, st, true)

	w := postReview(r, gin.H{"scores": gin.H{"cleanliness": 5}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, st.inserted)
	assert.Equal(t, 0, *triggered)
}

func TestCreateReviewRejectsOutOfRangeScore(t *testing.T) {
	st := &fakeStore{}
	r, triggered := newTestRouter(t, st, true)

	w := postReview(r, gin.H{
		"room_number": "12",
		"scores":      gin.H{"cleanliness": 9},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, st.inserted)
	assert.Equal(t, 0, *triggered)
}

func TestCreateReviewRejectsUnknownDimension(t *testing.T) {
	st := &fakeStore{}
	r, _ := newTestRouter(t, st, true)

	w := postReview(r, gin.H{
		"room_number": "12",
		"scores":      gin.H{"piscine": 5},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, st.inserted)
}

func TestCreateReviewNotReady(t *testing.T) {
	st := &fakeStore{}
	r, triggered := newTestRouter(t, st, false)

	w := postReview(r, gin.H{
		"room_number": "12",
		"scores":      gin.H{"cleanliness": 5},
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, st.inserted)
	assert.Equal(t, 0, *triggered)
}

func TestCreateReviewStoreFailure(t *testing.T) {
	st := &fakeStore{err: errors.New("scylla timeout")}
	r, triggered := newTestRouter(t, st, true)

	w := postReview(r, gin.H{
		"room_number": "12",
		"scores":      gin.H{"cleanliness": 5},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, *triggered, "le déclencheur ne doit pas être invoqué si la persistance échoue")
}

func TestGetStats(t *testing.T) {
	st := &fakeStore{}
	r, _ := newTestRouter(t, st, true)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	st := &fakeStore{}
	r, _ := newTestRouter(t, st, true)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	r2, _ := newTestRouter(t, st, false)
	w = httptest.NewRecorder()
	r2.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
