package customhttp

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

type middleware func(next httpCommandFunc) httpCommandFunc

func chainMiddleware(m ...middleware) middleware {
	return func(final httpCommandFunc) httpCommandFunc {
		last := final
		for i := len(m) - 1; i >= 0; i-- {
			last = m[i](last)
		}

		return func(req *http.Request) (resp *http.Response, err error) {
			return last(req)
		}
	}
}

func requestLoggingMiddleware() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			contextLogger := log.WithContext(req.Context())
			resp, err = next(req)
			if err != nil {
				contextLogger.WithError(err).Errorf("outbound %s %s failed", req.Method, req.URL.Path)
				return resp, err
			}
			contextLogger.Debugf("outbound %s %s -> %s", req.Method, req.URL.Path, resp.Status)
			return resp, err
		}
	}
}
