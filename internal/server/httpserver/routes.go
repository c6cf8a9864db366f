package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type route struct {
	method  string
	path    string
	public  bool
	handler gin.HandlerFunc
}

// routes is the full route table. Entries marked public are folded into the
// PublicPathSet when the server is built.
func (s *HTTPServer) routes() []route {
	return []route{
		{http.MethodGet, "/", true, s.index},

		{http.MethodPost, "/auth/register", true, s.register},
		{http.MethodPost, "/auth/login", true, s.login},
		{http.MethodPost, "/auth/logout", true, s.logout},

		{http.MethodGet, "/users", false, s.listUsers},
		{http.MethodDelete, "/users", false, s.deleteAllUsers},
		{http.MethodGet, "/users/me", false, s.currentUser},
		{http.MethodGet, "/users/:id", false, s.getUser},
		{http.MethodDelete, "/users/:id", false, s.deleteUser},
	}
}
