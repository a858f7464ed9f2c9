package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sajidk24/recipeshare/backend/internal/chat"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatHandler(repo *fakeMessageRepo) *ChatHandler {
	return NewChatHandler(repo, chat.NewHub(repo))
}

func TestSendMessage_MissingFields(t *testing.T) {
	h := newChatHandler(&fakeMessageRepo{})
	e := newTestEcho()

	for _, body := range []string{
		`{}`,
		`{"sender":"u1"}`,
		`{"sender":"u1","receiver":"u2"}`,
		`{"receiver":"u2","message":"hi"}`,
	} {
		c, _ := jsonRequest(e, http.MethodPost, "/api/chat", body)
		err := h.SendMessage(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr, "body %s", body)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
}

func TestSendMessage_Created(t *testing.T) {
	repo := &fakeMessageRepo{}
	h := newChatHandler(repo)
	e := newTestEcho()

	c, rec := jsonRequest(e, http.MethodPost, "/api/chat", `{"sender":"u1","receiver":"u2","message":"hello"}`)
	require.NoError(t, h.SendMessage(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "u1", created.Sender)
	assert.Equal(t, "u2", created.Receiver)
	assert.Equal(t, "hello", created.Body)
	assert.False(t, created.Timestamp.IsZero())

	require.Len(t, repo.messages, 1)
}

func TestGetHistory_OrderedAndSymmetric(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeMessageRepo{messages: []models.Message{
		{Sender: "u2", Receiver: "u1", Body: "second", Timestamp: base.Add(time.Minute)},
		{Sender: "u1", Receiver: "u2", Body: "first", Timestamp: base},
		{Sender: "u1", Receiver: "u3", Body: "other thread", Timestamp: base},
		{Sender: "u1", Receiver: "u2", Body: "third", Timestamp: base.Add(2 * time.Minute)},
	}}
	h := newChatHandler(repo)
	e := newTestEcho()

	fetch := func(a, b string) []models.Message {
		c, rec := jsonRequest(e, http.MethodGet, "/api/chat/"+a+"/"+b, "")
		c.SetParamNames("userId", "otherUserId")
		c.SetParamValues(a, b)
		require.NoError(t, h.GetHistory(c))
		var out []models.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	forward := fetch("u1", "u2")
	require.Len(t, forward, 3)
	assert.Equal(t, "first", forward[0].Body)
	assert.Equal(t, "second", forward[1].Body)
	assert.Equal(t, "third", forward[2].Body)

	// Same history whichever way the pair is asked for
	assert.Equal(t, forward, fetch("u2", "u1"))
}

func TestSendMessage_StorageFailure(t *testing.T) {
	repo := &fakeMessageRepo{failWith: assert.AnError}
	h := newChatHandler(repo)
	e := newTestEcho()

	c, _ := jsonRequest(e, http.MethodPost, "/api/chat", `{"sender":"u1","receiver":"u2","message":"hello"}`)
	err := h.SendMessage(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
