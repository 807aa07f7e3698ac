package tracker

import "testing"

func TestDetectFingerprinting(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     bool
	}{
		{"nil metadata", nil, false},
		{"empty metadata", map[string]any{}, false},
		{"canvas probing", map[string]any{"canvas": true}, true},
		{"webgl probing", map[string]any{"webgl": true}, true},
		{"canvas false", map[string]any{"canvas": false}, false},
		{"canvas string flag", map[string]any{"canvas": "toDataURL"}, true},
		{"font enumeration", map[string]any{"fonts": []any{"Arial", "Helvetica"}}, true},
		{"empty font list", map[string]any{"fonts": []any{}}, false},
		{"typed font list", map[string]any{"fonts": []string{"Courier"}}, true},
		{"unrelated keys", map[string]any{"referrer": "https://a.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFingerprinting(tt.metadata); got != tt.want {
				t.Errorf("DetectFingerprinting(%v) = %v, want %v", tt.metadata, got, tt.want)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.example.com/path?q=1", "www.example.com"},
		{"http://tracker.net:8080/pixel.gif", "tracker.net"},
		{"example.com", "example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.input); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsThirdParty(t *testing.T) {
	tests := []struct {
		name    string
		tracker string
		page    string
		want    bool
	}{
		{"unrelated domains", "doubleclick.net", "news.example.com", true},
		{"same domain", "example.com", "example.com", false},
		{"own subdomain", "cdn.example.com", "example.com", false},
		{"www stripped", "www.example.com", "example.com", false},
		{"full urls", "https://static.shop.com/t.js", "https://www.shop.com", false},
		{"tracker on own site", "x.com", "a.com", true},
		{"empty tracker", "", "a.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsThirdParty(tt.tracker, tt.page); got != tt.want {
				t.Errorf("IsThirdParty(%q, %q) = %v, want %v", tt.tracker, tt.page, got, tt.want)
			}
		})
	}
}
