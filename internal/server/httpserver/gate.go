package httpserver

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/gin-gonic/gin"
)

const unauthorizedMessage = "Unauthorized: No token provided"

// PublicPathSet holds the request paths that skip authentication.
// It is built once at startup and only read afterwards.
type PublicPathSet map[string]struct{}

func NewPublicPathSet(defaults []string, rs []route) PublicPathSet {
	set := make(PublicPathSet, len(defaults)+len(rs))
	for _, p := range defaults {
		set[p] = struct{}{}
	}
	for _, r := range rs {
		if r.public {
			set[r.path] = struct{}{}
		}
	}
	return set
}

func (p PublicPathSet) Contains(path string) bool {
	_, ok := p[path]
	return ok
}

// AccessGate lets public paths through untouched and requires a valid session
// token everywhere else. Every token failure gets the same 401 body; any other
// fault during the check becomes a 500 and the request is not forwarded.
func AccessGate(public PublicPathSet, sessions SessionValidator, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if public.Contains(c.Request.URL.Path) {
			c.Next()
			return
		}

		err := checkSession(c.Request, sessions)
		switch {
		case err == nil:
			c.Next()
		case common.IsTokenFailure(err):
			log.Debug(c.Request.Context(), "request rejected", "path", c.Request.URL.Path, "reason", err.Error())
			abortWithError(c, http.StatusUnauthorized, unauthorizedMessage)
		default:
			log.Error(c.Request.Context(), "session check failed", "path", c.Request.URL.Path, "error", err)
			abortWithError(c, http.StatusInternalServerError, internalMessage)
		}
	}
}

func checkSession(r *http.Request, sessions SessionValidator) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", common.ErrorInternal, p)
		}
	}()

	token, ok := sessions.Extract(r)
	if !ok {
		return common.ErrEmptyToken
	}
	_, err = sessions.Validate(token)
	return err
}
