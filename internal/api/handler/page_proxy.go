package handler

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewPageProxy forwards page and asset requests that survived the route guard
// to the frontend renderer. No token injection: pages fetch data through
// /api/*, which carries it.
func NewPageProxy(target *url.URL, log zerolog.Logger) echo.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(target)

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("page proxy error")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("frontend unavailable"))
	}

	return func(c echo.Context) error {
		proxy.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
