package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StellarStore/internal/docstore"
)

func newTestServer(store docstore.Store) *Server {
	return &Server{
		Log:       zap.NewNop(),
		Feedback:  NewAppendLog(store, "feedback", "feedback"),
		Customers: NewAppendLog(store, "loyalCustomers", "members"),
	}
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type failStore struct {
	docstore.Store
	err error
}

func (s *failStore) Save(context.Context, string, any) error { return s.err }

func TestComments_AppendsEntry(t *testing.T) {
	mem := docstore.NewMemStore()
	h := newTestServer(mem).Routes()

	name := gofakeit.Name()
	comments := gofakeit.Sentence(8)

	rec := postForm(t, h, "/comments", url.Values{
		"name":     {name},
		"comments": {comments},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comment received!", rec.Body.String())

	var doc struct {
		Feedback []Feedback `json:"feedback"`
	}
	require.NoError(t, mem.Load(context.Background(), "feedback", &doc))
	require.Len(t, doc.Feedback, 1)
	assert.Equal(t, name, doc.Feedback[0].Name)
	assert.Equal(t, comments, doc.Feedback[0].Comments)
	assert.NotEmpty(t, doc.Feedback[0].ID)
	assert.False(t, doc.Feedback[0].ReceivedAt.IsZero())
}

func TestComments_AppendsInOrder(t *testing.T) {
	mem := docstore.NewMemStore()
	h := newTestServer(mem).Routes()

	names := []string{gofakeit.Name(), gofakeit.Name(), gofakeit.Name()}
	for _, n := range names {
		rec := postForm(t, h, "/comments", url.Values{
			"name":     {n},
			"comments": {gofakeit.Sentence(5)},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var doc struct {
		Feedback []Feedback `json:"feedback"`
	}
	require.NoError(t, mem.Load(context.Background(), "feedback", &doc))
	require.Len(t, doc.Feedback, len(names))
	for i, n := range names {
		assert.Equal(t, n, doc.Feedback[i].Name)
	}
}

func TestComments_MissingFields(t *testing.T) {
	h := newTestServer(docstore.NewMemStore()).Routes()

	for _, form := range []url.Values{
		{},
		{"name": {gofakeit.Name()}},
		{"comments": {"great shop"}},
	} {
		rec := postForm(t, h, "/comments", form)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing POST parameter: name or comments")
	}
}

func TestComments_StoreFailure(t *testing.T) {
	store := &failStore{Store: docstore.NewMemStore(), err: errors.New("disk full")}
	h := newTestServer(store).Routes()

	rec := postForm(t, h, "/comments", url.Values{
		"name":     {gofakeit.Name()},
		"comments": {"hello"},
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong on the server")
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestCustomer_AppendsRecord(t *testing.T) {
	mem := docstore.NewMemStore()
	h := newTestServer(mem).Routes()

	first, last := gofakeit.FirstName(), gofakeit.LastName()
	email, phone := gofakeit.Email(), gofakeit.Phone()

	rec := postForm(t, h, "/customer", url.Values{
		"firstname": {first},
		"lastname":  {last},
		"email":     {email},
		"phone":     {phone},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New Customer Received!", rec.Body.String())

	var doc struct {
		Members []Customer `json:"members"`
	}
	require.NoError(t, mem.Load(context.Background(), "loyalCustomers", &doc))
	require.Len(t, doc.Members, 1)
	assert.Equal(t, first, doc.Members[0].FirstName)
	assert.Equal(t, last, doc.Members[0].LastName)
	assert.Equal(t, email, doc.Members[0].Email)
	assert.Equal(t, phone, doc.Members[0].Phone)
}

func TestCustomer_MissingFields(t *testing.T) {
	h := newTestServer(docstore.NewMemStore()).Routes()

	full := url.Values{
		"firstname": {gofakeit.FirstName()},
		"lastname":  {gofakeit.LastName()},
		"email":     {gofakeit.Email()},
		"phone":     {gofakeit.Phone()},
	}

	for drop := range full {
		form := url.Values{}
		for k, v := range full {
			if k != drop {
				form[k] = v
			}
		}
		rec := postForm(t, h, "/customer", form)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "dropped %s", drop)
	}
}

func TestAppendLog_KeepsExistingEntries(t *testing.T) {
	mem := docstore.NewMemStore()
	require.NoError(t, mem.Seed("feedback", json.RawMessage(
		`{"feedback":[{"name":"early bird","comments":"first!"}]}`)))

	log := NewAppendLog(mem, "feedback", "feedback")
	require.NoError(t, log.Append(context.Background(), Feedback{
		ID: "f_x", Name: "late arrival", Comments: "second",
	}))

	var doc struct {
		Feedback []Feedback `json:"feedback"`
	}
	require.NoError(t, mem.Load(context.Background(), "feedback", &doc))
	require.Len(t, doc.Feedback, 2)
	assert.Equal(t, "early bird", doc.Feedback[0].Name)
	assert.Equal(t, "late arrival", doc.Feedback[1].Name)
}
