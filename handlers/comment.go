package handlers

import (
	"hostel_complaints_go/db"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListCommentsHandler returns the discussion on a complaint
func ListCommentsHandler(c echo.Context) error {
	comments, err := services.ListComments(db.DB, middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// AddCommentHandler posts a comment on a complaint
func AddCommentHandler(c echo.Context) error {
	var input services.CommentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	comment, err := services.AddComment(db.DB, middleware.GetCaller(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// AddReplyHandler answers a comment
func AddReplyHandler(c echo.Context) error {
	var input services.CommentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	reply, err := services.AddReply(db.DB, middleware.GetCaller(c), c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reply)
}
