package handler

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sableashish494/ashish-primaspot-main/pkg/apierror"
	"github.com/sableashish494/ashish-primaspot-main/pkg/instagram"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/response"
)

// allowedImageHosts limits the proxy to Instagram's media CDNs.
var allowedImageHosts = []string{
	".cdninstagram.com",
	".fbcdn.net",
	"instagram.com",
}

// ImageHandler proxies media thumbnails so the dashboard can render them
// without tripping the CDN's referer checks.
type ImageHandler struct {
	client *instagram.Client
	logger logger.Logger
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(client *instagram.Client, log logger.Logger) *ImageHandler {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ImageHandler{client: client, logger: log}
}

// Proxy handles GET /api/image?url=.
func (h *ImageHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		response.Error(w, apierror.BadRequest("URL parameter is required"))
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme != "https" || !isAllowedImageHost(parsed.Hostname()) {
		response.Error(w, apierror.BadRequest("URL is not a supported media host"))
		return
	}

	resp, err := h.client.FetchImage(rawURL)
	if err != nil {
		h.logger.WithError(err).WithField("url", rawURL).Error("failed to proxy image")
		response.Error(w, apierror.InternalError("Failed to load image"))
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.WithError(err).Warn("image stream interrupted")
	}
}

func isAllowedImageHost(host string) bool {
	for _, allowed := range allowedImageHosts {
		bare := strings.TrimPrefix(allowed, ".")
		if host == bare || strings.HasSuffix(host, "."+bare) {
			return true
		}
	}
	return false
}
