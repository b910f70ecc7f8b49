package topology

// frameBlockHeader is the header omitted when a site opts into iframe
// embedding.
const frameBlockHeader = "X-Frame-Options"

// SecurityHeaders returns the fixed response-header set the viewer-response
// function injects. When allowIframe is true the frame-blocking header is
// omitted; everything else is always present.
func SecurityHeaders(allowIframe bool) map[string]string {
	headers := map[string]string{
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"X-Content-Type-Options":    "nosniff",
		"X-XSS-Protection":          "1; mode=block",
		"Referrer-Policy":           "same-origin",
		frameBlockHeader:            "DENY",
	}
	if allowIframe {
		delete(headers, frameBlockHeader)
	}
	return headers
}
