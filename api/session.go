package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.coordinator.ListSessions(c.Request.Context(), c.GetString("requester"))
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// contactUser opens a conversation with another user, optionally about a
// help request
func (s *Server) contactUser(c *gin.Context) {
	var params struct {
		UserID string `json:"user_id" binding:"required"`
		HelpID string `json:"help_id"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	session, err := s.coordinator.Contact(c.Request.Context(), c.GetString("requester"), params.UserID, params.HelpID)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *Server) sessionDetail(c *gin.Context) {
	session, err := s.coordinator.Session(c.Request.Context(), c.Param("sessionID"), c.GetString("requester"))
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// listMessages returns a page of messages. Without `since` the latest page
// is returned.
func (s *Server) listMessages(c *gin.Context) {
	var params struct {
		Since time.Time `form:"since"`
		Limit int       `form:"limit"`
	}

	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	messages, err := s.coordinator.ListMessages(c.Request.Context(), c.Param("sessionID"), c.GetString("requester"), params.Since, params.Limit)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (s *Server) sendMessage(c *gin.Context) {
	var params struct {
		Content string             `json:"content"`
		Kind    schema.MessageKind `json:"kind"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	message, err := s.coordinator.SendMessage(c.Request.Context(), c.Param("sessionID"), c.GetString("requester"), params.Content, params.Kind)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (s *Server) setMeetingInfo(c *gin.Context) {
	var params struct {
		MeetingPoint string     `json:"meeting_point"`
		MeetingTime  *time.Time `json:"meeting_time"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	session, err := s.coordinator.SetMeetingInfo(c.Request.Context(), c.Param("sessionID"), c.GetString("requester"), params.MeetingPoint, params.MeetingTime)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *Server) markRead(c *gin.Context) {
	if err := s.coordinator.MarkRead(c.Request.Context(), c.Param("sessionID"), c.GetString("requester")); err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
