package useragent

import "strings"

// ClientType is a coarse category of request origin.
type ClientType string

const (
	ClientWebBrowser    ClientType = "web_browser"
	ClientMobileBrowser ClientType = "mobile_browser"
	ClientAndroidApp    ClientType = "android_app"
	ClientAPITool       ClientType = "api_tool"
	ClientOther         ClientType = "other"
	ClientUnknown       ClientType = "unknown"
)

func (c ClientType) String() string { return string(c) }

type clientRule struct {
	client   ClientType
	keywords []string
}

// clientRules are evaluated in order and the first match wins.
// Categories overlap ("okhttp" shows up in Android apps and generic clients,
// automation tools embed browser engine tokens), so order is significant.
var clientRules = []clientRule{
	{ClientAPITool, []string{"postman", "insomnia", "curl", "wget", "httpie", "python-requests", "apache-httpclient", "restclient"}},
	{ClientAndroidApp, []string{"okhttp", "retrofit", "android", "dalvik", "java"}},
	{ClientWebBrowser, []string{"chrome", "firefox", "safari", "edge", "opera", "webkit"}},
	{ClientMobileBrowser, []string{"mobile", "android", "iphone", "ipad", "blackberry"}},
}

// DetectClientType categorises a User-Agent by case-insensitive keyword match.
// It is independent of the facet parser.
func DetectClientType(ua string) ClientType {
	if ua == "" {
		return ClientUnknown
	}

	lowerUA := strings.ToLower(ua)
	for _, rule := range clientRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowerUA, keyword) {
				return rule.client
			}
		}
	}
	return ClientOther
}

// Classify returns both the facets and the client type of a User-Agent.
func Classify(ua string) (Facets, ClientType) {
	return ParseFacets(ua), DetectClientType(ua)
}
