package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentHandler(posts ...models.Post) (*CommentHandler, *fakeCommentRepo) {
	userRepo := newFakeUserRepo(&models.User{ID: "A", Username: "alice"})
	commentRepo := &fakeCommentRepo{}
	return NewCommentHandler(commentRepo, newFakePostRepo(posts...), userRepo), commentRepo
}

func TestCreateCommentStampsAuthorHandle(t *testing.T) {
	h, _ := newCommentHandler(models.Post{ID: "p1", UserID: "B", Time: 100})

	body := models.CreateCommentRequest{Text: "great shot"}
	c, rec := newTestContext(http.MethodPost, "/posts/p1/comments", body, "A")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	comment := decodeJSON[models.Comment](t, rec)
	assert.Equal(t, "p1", comment.PostID)
	assert.Equal(t, "alice", comment.Username)
	assert.Equal(t, "great shot", comment.Text)
	assert.NotEmpty(t, comment.ID)
	assert.NotZero(t, comment.Timestamp)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	h, _ := newCommentHandler()

	body := models.CreateCommentRequest{Text: "hello"}
	c, _ := newTestContext(http.MethodPost, "/posts/missing/comments", body, "A")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	err := h.CreateComment(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestGetCommentsSortedNewestFirst(t *testing.T) {
	h, _ := newCommentHandler(models.Post{ID: "p1", UserID: "B", Time: 100})

	for _, text := range []string{"first", "second", "third"} {
		body := models.CreateCommentRequest{Text: text}
		c, _ := newTestContext(http.MethodPost, "/posts/p1/comments", body, "A")
		c.SetParamNames("id")
		c.SetParamValues("p1")
		require.NoError(t, h.CreateComment(c))
	}

	c, rec := newTestContext(http.MethodGet, "/posts/p1/comments", nil, "A")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	require.NoError(t, h.GetCommentsByPostID(c))

	comments := decodeJSON[[]models.Comment](t, rec)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "first", comments[2].Text)
}
