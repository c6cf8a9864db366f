package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "userauth",
	})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err, "request body")
		return
	}

	u, err := s.users.Register(c.Request.Context(), c.Writer, req.Username, req.Password)
	if err != nil {
		respondError(c, s.logger, err, "")
		return
	}

	c.JSON(http.StatusCreated, toUserDTO(u))
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err, "request body")
		return
	}

	u, err := s.users.Login(c.Request.Context(), c.Writer, req.Username, req.Password)
	if err != nil {
		respondError(c, s.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, toUserDTO(u))
}

func (s *HTTPServer) logout(c *gin.Context) {
	s.users.Logout(c.Writer)
	c.JSON(http.StatusOK, MessageDTO{Message: "Logged out"})
}

func (s *HTTPServer) currentUser(c *gin.Context) {
	u, err := s.users.CurrentUser(c.Request.Context(), c.Request)
	if err != nil {
		respondError(c, s.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, toUserDTO(u))
}

func (s *HTTPServer) getUser(c *gin.Context) {
	raw := c.Param("id")
	notFound := fmt.Sprintf("User with id %s not found", raw)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, s.logger, common.ErrorNotFound, notFound)
		return
	}

	u, err := s.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, s.logger, err, notFound)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(u))
}

func (s *HTTPServer) deleteUser(c *gin.Context) {
	raw := c.Param("id")
	notFound := fmt.Sprintf("User with id %s not found", raw)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, s.logger, common.ErrorNotFound, notFound)
		return
	}

	if err := s.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, s.logger, err, notFound)
		return
	}
	c.JSON(http.StatusOK, MessageDTO{Message: "User deleted"})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingFailed(c, err, "query parameters")
		return
	}

	page, err := s.users.ListUsers(c.Request.Context(), models.PageParams{Page: q.Page, Limit: q.Limit})
	if err != nil {
		respondError(c, s.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, toUserPageDTO(page))
}

func (s *HTTPServer) deleteAllUsers(c *gin.Context) {
	if _, err := s.users.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, s.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, MessageDTO{Message: "All users deleted"})
}
