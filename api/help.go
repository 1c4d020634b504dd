package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/mutual-aid-api/help"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

var helpKinds = []schema.HelpKind{
	schema.HelpKindPad,
	schema.HelpKindTissue,
	schema.HelpKindResource,
	schema.HelpKindSafety,
	schema.HelpKindEmotional,
	schema.HelpKindOther,
}

const (
	noteMaxLength    = schema.HelpNoteMaxLength
	messageMaxLength = schema.MessageMaxLength
)

// askForHelp is the API for asking help from others
func (s *Server) askForHelp(c *gin.Context) {
	requester := c.GetString("requester")

	var params struct {
		Kind     schema.HelpKind  `json:"kind"`
		Note     string           `json:"note"`
		Location *schema.Location `json:"location"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, err := s.coordinator.Create(c.Request.Context(), help.CreateInput{
		RequesterID: requester,
		Kind:        params.Kind,
		Note:        params.Note,
		Location:    params.Location,
	})
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

// helpDetail returns the current status of a help request
func (s *Server) helpDetail(c *gin.Context) {
	req, err := s.coordinator.GetStatus(c.Request.Context(), c.Param("helpID"), c.GetString("requester"))
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (s *Server) cancelHelp(c *gin.Context) {
	req, err := s.coordinator.Cancel(c.Request.Context(), c.Param("helpID"), c.GetString("requester"))
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (s *Server) completeHelp(c *gin.Context) {
	var params help.CompleteInput
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, err := s.coordinator.Complete(c.Request.Context(), c.Param("helpID"), c.GetString("requester"), params)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

// contactHelp opens a conversation about a help request. A helper leaves
// user_id empty to contact the requester.
func (s *Server) contactHelp(c *gin.Context) {
	requester := c.GetString("requester")
	helpID := c.Param("helpID")

	var params struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&params); err != nil && err != io.EOF {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	other := params.UserID
	if other == "" {
		req, err := s.coordinator.GetStatus(c.Request.Context(), helpID, requester)
		if err != nil {
			abortWithHelpError(c, err)
			return
		}
		other = req.RequesterID
	}

	session, err := s.coordinator.Contact(c.Request.Context(), requester, other, helpID)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
