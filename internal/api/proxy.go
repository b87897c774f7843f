package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var proxyClient = &http.Client{Timeout: 20 * time.Second}

// ImageProxy fetches a Liquipedia-hosted image server-side so the browser
// avoids hotlink blocks. Only liquipedia.net URLs are allowed.
func ImageProxy() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("url"))
		if raw == "" {
			c.String(400, "Missing url")
			return
		}
		if !strings.HasPrefix(raw, "http") {
			if dec, err := url.QueryUnescape(raw); err == nil {
				raw = dec
			}
		}
		if !strings.HasPrefix(raw, "https://liquipedia.net/") && !strings.HasPrefix(raw, "http://liquipedia.net/") {
			c.String(400, "Invalid url")
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, raw, nil)
		if err != nil {
			c.String(400, "Invalid url")
			return
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "image/*")
		req.Header.Set("Referer", "https://liquipedia.net/")

		resp, err := proxyClient.Do(req)
		if err != nil {
			c.String(502, "Proxy error")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.String(resp.StatusCode, "Upstream error")
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.DataFromReader(200, resp.ContentLength, contentType, resp.Body, nil)
	}
}
