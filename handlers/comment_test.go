package handlers

import (
	"encoding/json"
	"hostel_complaints_go/models"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandlers(t *testing.T) {
	database := setupTestDB(t)
	owner := createUser(t, database, "asha", models.RoleStudent, nil)
	other := createUser(t, database, "ravi", models.RoleStudent, nil)
	admin := createUser(t, database, "warden", models.RoleAdmin, nil)
	complaint := createComplaint(t, database, owner, "Broken fan", time.Now().UTC())

	var comment models.ComplaintComment

	t.Run("Owner comments", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/", strings.NewReader(`{"body":"Still broken <script>x</script>"}`))
		withID(c, complaint.ID)
		actAs(c, owner)

		require.NoError(t, AddCommentHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
		assert.Equal(t, "Still broken", comment.Body)
	})

	t.Run("Admin replies", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/", strings.NewReader(`{"body":"Technician booked"}`))
		withID(c, comment.ID)
		actAs(c, admin)

		require.NoError(t, AddReplyHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Other student cannot comment", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/", strings.NewReader(`{"body":"Me too"}`))
		withID(c, complaint.ID)
		actAs(c, other)
		assertHTTPError(t, AddCommentHandler(c), http.StatusForbidden)
	})

	t.Run("Empty body", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/", strings.NewReader(`{"body":"   "}`))
		withID(c, complaint.ID)
		actAs(c, owner)
		he := assertHTTPError(t, AddCommentHandler(c), http.StatusUnprocessableEntity)
		assert.Equal(t, "body", he.Message.(map[string]string)["field"])
	})

	t.Run("Reply to unknown comment", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/", strings.NewReader(`{"body":"Hello"}`))
		withID(c, "missing")
		actAs(c, admin)
		assertHTTPError(t, AddReplyHandler(c), http.StatusNotFound)
	})

	t.Run("List with replies", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		withID(c, complaint.ID)
		actAs(c, owner)

		require.NoError(t, ListCommentsHandler(c))
		var comments []models.ComplaintComment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
		require.Len(t, comments, 1)
		require.Len(t, comments[0].Replies, 1)
		assert.Equal(t, "Technician booked", comments[0].Replies[0].Body)
	})
}
