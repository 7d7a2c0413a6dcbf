package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

func TestParseFacets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       string
		expected useragent.Facets
	}{
		{
			name:     "empty",
			ua:       "",
			expected: useragent.UnknownFacets(),
		},
		{
			name: "whitespace is present but unparsable",
			ua:   "  \t",
			expected: useragent.Facets{
				BrowserFamily:  useragent.Unknown,
				BrowserVersion: useragent.Unknown,
				OSFamily:       useragent.Unknown,
				OSVersion:      useragent.Unknown,
				DeviceFamily:   useragent.Unknown,
				IsPC:           true,
				Raw:            "  \t",
			},
		},
		{
			name: "chrome desktop",
			ua:   chromeDesktopUA,
			expected: useragent.Facets{
				BrowserFamily:  "Chrome",
				BrowserVersion: "120.0.0.0",
				OSFamily:       "Windows",
				OSVersion:      "10",
				DeviceFamily:   "Desktop",
				IsPC:           true,
				Raw:            chromeDesktopUA,
			},
		},
		{
			name: "iphone",
			ua:   safariMobileUA,
			expected: useragent.Facets{
				BrowserFamily:  "Safari",
				BrowserVersion: "14.0",
				OSFamily:       "iOS",
				OSVersion:      "14.4",
				DeviceFamily:   "iPhone",
				IsMobile:       true,
				Raw:            safariMobileUA,
			},
		},
		{
			name: "samsung tablet",
			ua:   androidTabletUA,
			expected: useragent.Facets{
				BrowserFamily:  "Chrome",
				BrowserVersion: "91.0.4472.120",
				OSFamily:       "Android",
				OSVersion:      "11",
				DeviceFamily:   "Samsung Tablet",
				IsTablet:       true,
				Raw:            androidTabletUA,
			},
		},
		{
			name: "postman",
			ua:   postmanUA,
			expected: useragent.Facets{
				BrowserFamily:  "PostmanRuntime",
				BrowserVersion: "7.32.3",
				OSFamily:       useragent.Unknown,
				OSVersion:      useragent.Unknown,
				DeviceFamily:   "Other",
				IsPC:           true,
				Raw:            postmanUA,
			},
		},
		{
			name: "googlebot",
			ua:   botUA,
			expected: useragent.Facets{
				BrowserFamily:  useragent.Unknown,
				BrowserVersion: useragent.Unknown,
				OSFamily:       useragent.Unknown,
				OSVersion:      useragent.Unknown,
				DeviceFamily:   "Spider",
				IsPC:           true,
				IsBot:          true,
				Raw:            botUA,
			},
		},
		{
			name: "unparsable",
			ua:   "qwerty-zxcv",
			expected: useragent.Facets{
				BrowserFamily:  useragent.Unknown,
				BrowserVersion: useragent.Unknown,
				OSFamily:       useragent.Unknown,
				OSVersion:      useragent.Unknown,
				DeviceFamily:   useragent.Unknown,
				IsPC:           true,
				Raw:            "qwerty-zxcv",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, useragent.ParseFacets(tt.ua))
		})
	}
}

func TestParseFacetsFlagsNeverAllFalse(t *testing.T) {
	t.Parallel()

	for _, ua := range benchUserAgents {
		f := useragent.ParseFacets(ua)
		assert.True(t, f.IsMobile || f.IsTablet || f.IsPC, "ua=%q", ua)
		assert.False(t, f.IsMobile && f.IsTablet, "ua=%q", ua)
	}
}

func TestUnknownFacets(t *testing.T) {
	t.Parallel()

	f := useragent.UnknownFacets()
	assert.Equal(t, useragent.Unknown, f.BrowserFamily)
	assert.Equal(t, useragent.Unknown, f.BrowserVersion)
	assert.Equal(t, useragent.Unknown, f.OSFamily)
	assert.Equal(t, useragent.Unknown, f.OSVersion)
	assert.Equal(t, useragent.Unknown, f.DeviceFamily)
	assert.True(t, f.IsPC)
	assert.False(t, f.IsMobile)
	assert.False(t, f.IsTablet)
	assert.False(t, f.IsBot)
	assert.Empty(t, f.Raw)
}
