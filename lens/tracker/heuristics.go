package tracker

import (
	"net/url"
	"strings"
)

// DetectFingerprinting inspects event metadata for fingerprinting signals:
// canvas or WebGL probing flags, or a non-empty enumerated font list.
func DetectFingerprinting(metadata map[string]any) bool {
	if metadata == nil {
		return false
	}

	if truthy(metadata["canvas"]) || truthy(metadata["webgl"]) {
		return true
	}

	if fonts, ok := metadata["fonts"].([]any); ok && len(fonts) > 0 {
		return true
	}
	if fonts, ok := metadata["fonts"].([]string); ok && len(fonts) > 0 {
		return true
	}

	return false
}

// truthy mirrors the loose boolean semantics of extension-supplied metadata,
// which arrives as arbitrary JSON.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false" && val != "0"
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}

// ExtractDomain returns the hostname portion of a URL, or the input itself
// when it is already a bare domain.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

// IsThirdParty reports whether trackerDomain is foreign to pageDomain: after
// www-stripping, neither domain contains the other.
func IsThirdParty(trackerDomain, pageDomain string) bool {
	tracker := normalizeDomain(trackerDomain)
	page := normalizeDomain(pageDomain)

	if tracker == "" || page == "" {
		return false
	}

	return !strings.Contains(tracker, page) && !strings.Contains(page, tracker)
}

func normalizeDomain(d string) string {
	host := strings.ToLower(ExtractDomain(d))
	return strings.TrimPrefix(host, "www.")
}
