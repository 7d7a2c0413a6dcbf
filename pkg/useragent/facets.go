package useragent

// Unknown is the display value used for any facet that cannot be determined.
const Unknown = "Unknown"

// Facets is the display-oriented view of a parsed User-Agent.
type Facets struct {
	BrowserFamily  string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	OSFamily       string `json:"os"`
	OSVersion      string `json:"os_version"`
	DeviceFamily   string `json:"device"`
	IsMobile       bool   `json:"is_mobile"`
	IsTablet       bool   `json:"is_tablet"`
	IsPC           bool   `json:"is_pc"`
	IsBot          bool   `json:"is_bot"`
	Raw            string `json:"user_agent_string,omitempty"`
}

// UnknownFacets is returned for an absent User-Agent.
func UnknownFacets() Facets {
	return Facets{
		BrowserFamily:  Unknown,
		BrowserVersion: Unknown,
		OSFamily:       Unknown,
		OSVersion:      Unknown,
		DeviceFamily:   Unknown,
		IsPC:           true,
	}
}

// ParseFacets classifies a raw User-Agent into display facets.
// It never fails: anything that cannot be detected is reported as Unknown.
func ParseFacets(ua string) Facets {
	if ua == "" {
		return UnknownFacets()
	}

	parsed, _ := Parse(ua)
	return FacetsOf(parsed)
}

// FacetsOf converts an already parsed UserAgent into display facets.
func FacetsOf(ua UserAgent) Facets {
	if ua.UserAgent() == "" {
		return UnknownFacets()
	}

	f := Facets{
		BrowserFamily:  orUnknown(browserDisplayNames[ua.BrowserName()]),
		BrowserVersion: orUnknown(ua.BrowserVer()),
		OSFamily:       orUnknown(osDisplayNames[ua.OS()]),
		OSVersion:      orUnknown(ua.OSVersion()),
		DeviceFamily:   deviceFamily(ua.DeviceType(), ua.DeviceModel()),
		IsMobile:       ua.IsMobile(),
		IsTablet:       ua.IsTablet(),
		IsBot:          ua.IsBot(),
		Raw:            ua.UserAgent(),
	}
	f.IsPC = !f.IsMobile && !f.IsTablet
	return f
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

var browserDisplayNames = map[string]string{
	BrowserChrome:           "Chrome",
	BrowserFirefox:          "Firefox",
	BrowserSafari:           "Safari",
	BrowserEdge:             "Edge",
	BrowserOpera:            "Opera",
	BrowserIE:               "IE",
	BrowserSamsung:          "Samsung Internet",
	BrowserUC:               "UC Browser",
	BrowserQQ:               "QQ Browser",
	BrowserHuawei:           "Huawei Browser",
	BrowserVivo:             "Vivo Browser",
	BrowserMIUI:             "MIUI Browser",
	BrowserBrave:            "Brave",
	BrowserVivaldi:          "Vivaldi",
	BrowserYandex:           "Yandex Browser",
	BrowserPostman:          "PostmanRuntime",
	BrowserInsomnia:         "Insomnia",
	BrowserCurl:             "curl",
	BrowserWget:             "Wget",
	BrowserHTTPie:           "HTTPie",
	BrowserPythonRequests:   "Python Requests",
	BrowserOkHTTP:           "okhttp",
	BrowserApacheHTTPClient: "Apache-HttpClient",
	BrowserGoHTTPClient:     "Go-http-client",
}

var osDisplayNames = map[string]string{
	OSWindows:      "Windows",
	OSWindowsPhone: "Windows Phone",
	OSMacOS:        "Mac OS X",
	OSiOS:          "iOS",
	OSAndroid:      "Android",
	OSLinux:        "Linux",
	OSChromeOS:     "Chrome OS",
	OSHarmonyOS:    "HarmonyOS",
	OSFireOS:       "Fire OS",
}

var mobileFamilies = map[string]string{
	MobileDeviceIPhone:  "iPhone",
	MobileDeviceSamsung: "Samsung",
	MobileDeviceHuawei:  "Huawei",
	MobileDeviceXiaomi:  "Xiaomi",
	MobileDeviceOppo:    "Oppo",
	MobileDeviceVivo:    "Vivo",
}

var tabletFamilies = map[string]string{
	TabletDeviceIPad:       "iPad",
	TabletDeviceSamsung:    "Samsung Tablet",
	TabletDeviceHuawei:     "Huawei Tablet",
	TabletDeviceKindleFire: "Kindle",
	TabletDeviceSurface:    "Surface",
}

func deviceFamily(deviceType, model string) string {
	switch deviceType {
	case DeviceTypeMobile:
		if name, ok := mobileFamilies[model]; ok {
			return name
		}
		return "Generic Smartphone"
	case DeviceTypeTablet:
		if name, ok := tabletFamilies[model]; ok {
			return name
		}
		return "Generic Tablet"
	case DeviceTypeDesktop:
		return "Desktop"
	case DeviceTypeBot:
		return "Spider"
	case DeviceTypeTV:
		return "Smart TV"
	case DeviceTypeConsole:
		return "Game Console"
	case DeviceTypeLibrary:
		return "Other"
	}
	return Unknown
}
