package http

import (
	"net/http"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/httpmetrics"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

// BuildBaseHandler wraps handler in the middleware every request goes through,
// outermost first: security headers, trace id, recovery, request log,
// metrics, body size limit.
func BuildBaseHandler(appName string, log *logger.Logger, errs *ErrorHandler, handler http.Handler) http.Handler {
	collector := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log, errs)
	requestLog := RequestLogMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize, errs)
	csp := ContentSecurityPolicyMiddleware("")

	return SecurityHeadersMiddleware(csp(TraceIDMiddleware(recovery(requestLog(collector.Wrap(maxRequestSize(handler)))))))
}
