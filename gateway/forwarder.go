package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ForwardOptions configures where a matched route is relayed to. The
// request path, minus StripPrefix, is appended to TargetBase.
type ForwardOptions struct {
	TargetBase  string
	StripPrefix string
}

var hopByHopHeaders = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailers":            true,
	"transfer-encoding":   true,
	"upgrade":             true,
}

var forwardClient = &http.Client{Timeout: 30 * time.Second}

// Forward relays the request verbatim to the upstream and copies status and
// body back unchanged. The gateway adds no business logic; a transport
// failure yields a generic 500.
func Forward(c *gin.Context, log *zap.Logger, opts ForwardOptions) {
	targetPath := strings.TrimPrefix(c.Request.URL.Path, opts.StripPrefix)

	targetURL := opts.TargetBase + targetPath
	if c.Request.URL.RawQuery != "" {
		targetURL += "?" + c.Request.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, c.Request.Body)
	if err != nil {
		log.Error("failed to build forward request", zap.String("url", targetURL), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	for k, v := range c.Request.Header {
		if hopByHopHeaders[strings.ToLower(k)] {
			continue
		}
		req.Header[k] = v
	}
	if userID, ok := c.Get("user_id"); ok {
		if uid, ok := userID.(string); ok {
			req.Header.Set("X-User-ID", uid)
		}
	}

	resp, err := forwardClient.Do(req)
	if err != nil {
		log.Error("upstream forward failed",
			zap.String("method", c.Request.Method),
			zap.String("url", targetURL),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upstream unreachable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		lower := strings.ToLower(k)
		if hopByHopHeaders[lower] || strings.HasPrefix(lower, "access-control-") {
			continue
		}
		c.Header(k, strings.Join(v, ","))
	}

	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Error("failed to copy upstream body", zap.String("url", targetURL), zap.Error(err))
	}
}
