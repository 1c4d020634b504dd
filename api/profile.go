package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/mutual-aid-api/help"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

func (s *Server) profileDetail(c *gin.Context) {
	user, err := s.coordinator.GetProfile(c.Request.Context(), c.GetString("requester"))
	if err != nil {
		if help.KindOf(err) == help.KindNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound, err)
			return
		}
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) profileUpdateDisplayName(c *gin.Context) {
	var params struct {
		DisplayName string `json:"display_name"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.coordinator.SetDisplayName(c.Request.Context(), c.GetString("requester"), params.DisplayName)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) profileUpdateLocation(c *gin.Context) {
	var params schema.Location
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.coordinator.UpdateLocation(c.Request.Context(), c.GetString("requester"), params)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) profileUpdateResources(c *gin.Context) {
	var params struct {
		Resources []string `json:"resources"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.coordinator.UpdateResources(c.Request.Context(), c.GetString("requester"), params.Resources)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) profileUpdateVisibility(c *gin.Context) {
	var params struct {
		Visible *bool `json:"visible" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.coordinator.UpdateVisibility(c.Request.Context(), c.GetString("requester"), *params.Visible)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) profileUpdatePrivacyRadius(c *gin.Context) {
	var params struct {
		Radius float64 `json:"radius"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.coordinator.UpdatePrivacyRadius(c.Request.Context(), c.GetString("requester"), params.Radius)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// nearbyCandidates lists helpers around a point, or around the caller's home
// when no point is given. Positions are blurred by each helper's privacy radius.
func (s *Server) nearbyCandidates(c *gin.Context) {
	var params struct {
		Latitude  *float64 `form:"lat"`
		Longitude *float64 `form:"lng"`
		Radius    float64  `form:"radius"`
		Limit     int      `form:"limit"`
		Kind      string   `form:"kind"`
	}

	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	query := help.NearbyQuery{
		Radius: params.Radius,
		Limit:  params.Limit,
		Kind:   schema.HelpKind(params.Kind),
	}

	switch {
	case params.Latitude != nil && params.Longitude != nil:
		query.Location = &schema.Location{
			Latitude:  *params.Latitude,
			Longitude: *params.Longitude,
		}
	case params.Latitude != nil || params.Longitude != nil:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	candidates, err := s.coordinator.GetNearbyCandidates(c.Request.Context(), c.GetString("requester"), query)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// requestResource asks a helper from the map for one of its resources. The
// request is matched to the helper right away.
func (s *Server) requestResource(c *gin.Context) {
	var params struct {
		Resource string `json:"resource" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, session, err := s.coordinator.RequestResource(c.Request.Context(), c.GetString("requester"), c.Param("userID"), params.Resource)
	if err != nil {
		abortWithHelpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"help":    req,
		"session": session,
	})
}
