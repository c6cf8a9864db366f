package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// SessionCookiePath is the path used both to set and to delete the session cookie.
const SessionCookiePath = "/"

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"
