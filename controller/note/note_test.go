package note

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayflow/model"
	"dayflow/services"
)

type fakeNoteRepo struct {
	services.NoteRepository

	notes      map[string]*model.Note
	lastFilter services.NoteFilter
	lastUpsert map[string]interface{}
	lockedPin  string
	lockedBio  bool
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*model.Note{}}
}

func (f *fakeNoteRepo) List(ctx context.Context, uid string, filter services.NoteFilter) ([]model.Note, error) {
	f.lastFilter = filter
	out := make([]model.Note, 0, len(f.notes))
	for _, n := range f.notes {
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNoteRepo) Upsert(ctx context.Context, uid, id string, fields map[string]interface{}) (*model.Note, error) {
	f.lastUpsert = fields
	title, _ := fields["title"].(string)
	return &model.Note{ID: "n1", Title: title}, nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, uid, id string) (bool, error) {
	if _, ok := f.notes[id]; !ok {
		return false, nil
	}
	delete(f.notes, id)
	return true, nil
}

func (f *fakeNoteRepo) TogglePin(ctx context.Context, uid, id string) (*model.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	note.IsPinned = !note.IsPinned
	return note, nil
}

func (f *fakeNoteRepo) Lock(ctx context.Context, uid, id, lockPin string, useBiometric bool) (*model.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	f.lockedPin = lockPin
	f.lockedBio = useBiometric
	note.IsLocked = true
	note.UseBiometric = useBiometric
	return note, nil
}

func (f *fakeNoteRepo) Unlock(ctx context.Context, uid, id string) (*model.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	note.IsLocked = false
	note.UseBiometric = false
	return note, nil
}

func noteRouter(repo services.NoteRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NoteController(router, func(c *gin.Context) { c.Set("uid", "user-1") }, repo)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestListNotesForwardsFilters(t *testing.T) {
	repo := newFakeNoteRepo()
	router := noteRouter(repo)

	w := doJSON(router, http.MethodGet, "/api/notes?tag=work&category=ideas", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "work", repo.lastFilter.Tag)
	assert.Equal(t, "ideas", repo.lastFilter.Category)
}

func TestCreateNoteDefaultsPinnedFalse(t *testing.T) {
	repo := newFakeNoteRepo()
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes", `{"title":"Ideas"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, false, repo.lastUpsert["isPinned"])
}

func TestTogglePin(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["n1"] = &model.Note{ID: "n1", Title: "Pin me"}
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes/n1/toggle-pin", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPinned":true`)

	w = doJSON(router, http.MethodPost, "/api/notes/n1/toggle-pin", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPinned":false`)
}

func TestLockNoteRequiresCredential(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["n1"] = &model.Note{ID: "n1"}
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes/n1/lock", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "lockPin or useBiometric is required")
}

func TestLockNoteWithPin(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["n1"] = &model.Note{ID: "n1"}
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes/n1/lock", `{"lockPin":"1234"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1234", repo.lockedPin)
	assert.Contains(t, w.Body.String(), `"isLocked":true`)
	assert.NotContains(t, w.Body.String(), "1234", "pin must never round-trip to clients")
}

func TestLockNoteBiometricOnly(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["n1"] = &model.Note{ID: "n1"}
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes/n1/lock", `{"useBiometric":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.lockedBio)
	assert.Empty(t, repo.lockedPin)
}

func TestUnlockNote(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["n1"] = &model.Note{ID: "n1", IsLocked: true}
	router := noteRouter(repo)

	w := doJSON(router, http.MethodPost, "/api/notes/n1/unlock", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isLocked":false`)
}

func TestUnlockMissingNote(t *testing.T) {
	router := noteRouter(newFakeNoteRepo())

	w := doJSON(router, http.MethodPost, "/api/notes/ghost/unlock", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
