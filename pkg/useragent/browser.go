package useragent

import (
	"regexp"
	"sort"
	"strings"
)

// Browser is the software that issued the request: a browser or an HTTP client.
type Browser struct {
	Name    string
	Version string
}

// BrowserPattern describes how to recognise one browser or client.
// Keywords must all be present unless AnyKeyword is set, in which case one is enough.
type BrowserPattern struct {
	Name       string
	Keywords   []string
	AnyKeyword bool
	Excludes   []string
	Regex      *regexp.Regexp
	OrderHint  int
}

func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) < 2 {
		return ""
	}
	version := matches[1]
	if len(version) > maxVersionLength {
		version = version[:maxVersionLength]
	}
	return version
}

const maxVersionLength = 20

func (p BrowserPattern) matches(ua string) bool {
	for _, exclude := range p.Excludes {
		if strings.Contains(ua, exclude) {
			return false
		}
	}
	if p.AnyKeyword {
		for _, keyword := range p.Keywords {
			if strings.Contains(ua, keyword) {
				return true
			}
		}
		return false
	}
	for _, keyword := range p.Keywords {
		if !strings.Contains(ua, keyword) {
			return false
		}
	}
	return true
}

// Detection order is driven by OrderHint. API tools and HTTP libraries come first: some of them embed browser tokens.
var browserPatterns = []BrowserPattern{
	{
		Name:      BrowserPostman,
		Keywords:  []string{"postmanruntime"},
		Regex:     regexp.MustCompile(`postmanruntime/([\d.]+)`),
		OrderHint: 1,
	},
	{
		Name:      BrowserInsomnia,
		Keywords:  []string{"insomnia"},
		Regex:     regexp.MustCompile(`insomnia/([\d.]+)`),
		OrderHint: 2,
	},
	{
		Name:      BrowserCurl,
		Keywords:  []string{"curl/"},
		Regex:     regexp.MustCompile(`curl/([\d.]+)`),
		OrderHint: 3,
	},
	{
		Name:      BrowserWget,
		Keywords:  []string{"wget/"},
		Regex:     regexp.MustCompile(`wget/([\d.]+)`),
		OrderHint: 4,
	},
	{
		Name:      BrowserHTTPie,
		Keywords:  []string{"httpie/"},
		Regex:     regexp.MustCompile(`httpie/([\d.]+)`),
		OrderHint: 5,
	},
	{
		Name:      BrowserPythonRequests,
		Keywords:  []string{"python-requests"},
		Regex:     regexp.MustCompile(`python-requests/([\d.]+)`),
		OrderHint: 6,
	},
	{
		Name:      BrowserOkHTTP,
		Keywords:  []string{"okhttp"},
		Regex:     regexp.MustCompile(`okhttp/([\d.]+)`),
		OrderHint: 7,
	},
	{
		Name:      BrowserApacheHTTPClient,
		Keywords:  []string{"apache-httpclient"},
		Regex:     regexp.MustCompile(`apache-httpclient/([\d.]+)`),
		OrderHint: 8,
	},
	{
		Name:      BrowserGoHTTPClient,
		Keywords:  []string{"go-http-client"},
		Regex:     regexp.MustCompile(`go-http-client/([\d.]+)`),
		OrderHint: 9,
	},
	{
		Name:       BrowserEdge,
		Keywords:   []string{"edg/", "edge/", "edga/", "edgios/"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:edge|edg|edga|edgios)/([\d.]+)`),
		OrderHint:  10,
	},
	{
		Name:      BrowserSamsung,
		Keywords:  []string{"samsungbrowser"},
		Regex:     regexp.MustCompile(`samsungbrowser[/\s]([\d.]+)`),
		OrderHint: 20,
	},
	{
		Name:      BrowserUC,
		Keywords:  []string{"ucbrowser"},
		Regex:     regexp.MustCompile(`ucbrowser[/\s]([\d.]+)`),
		OrderHint: 30,
	},
	{
		Name:      BrowserQQ,
		Keywords:  []string{"qqbrowser"},
		Regex:     regexp.MustCompile(`(?:qqbrowser|qq)[/\s]([\d.]+)`),
		OrderHint: 40,
	},
	{
		Name:      BrowserQQ, // Alternative QQ browser detection
		Keywords:  []string{"qq", "browser"},
		Regex:     regexp.MustCompile(`(?:qqbrowser|qq)[/\s]([\d.]+)`),
		OrderHint: 45,
	},
	{
		Name:      BrowserHuawei,
		Keywords:  []string{"huaweibrowser"},
		Regex:     regexp.MustCompile(`huaweibrowser[/\s]([\d.]+)`),
		OrderHint: 50,
	},
	{
		Name:      BrowserVivo,
		Keywords:  []string{"vivobrowser"},
		Regex:     regexp.MustCompile(`vivobrowser[/\s]([\d.]+)`),
		OrderHint: 60,
	},
	{
		Name:      BrowserMIUI,
		Keywords:  []string{"miuibrowser"},
		Regex:     regexp.MustCompile(`miuibrowser[/\s]([\d.]+)`),
		OrderHint: 70,
	},
	{
		Name:      BrowserMIUI, // Alternative MIUI browser detection
		Keywords:  []string{"miui"},
		Regex:     regexp.MustCompile(`miui[/\s]([\d.]+)`),
		OrderHint: 75,
	},
	{
		Name:      BrowserYandex,
		Keywords:  []string{"yabrowser"},
		Regex:     regexp.MustCompile(`yabrowser[/\s]([\d.]+)`),
		OrderHint: 80,
	},
	{
		Name:      BrowserYandex, // Alternative Yandex browser detection
		Keywords:  []string{"yandexbrowser"},
		Regex:     regexp.MustCompile(`yandexbrowser[/\s]([\d.]+)`),
		OrderHint: 85,
	},
	{
		Name:      BrowserVivaldi,
		Keywords:  []string{"vivaldi"},
		Regex:     regexp.MustCompile(`vivaldi[/\s]([\d.]+)`),
		OrderHint: 90,
	},
	{
		Name:      BrowserBrave,
		Keywords:  []string{"brave"},
		Regex:     regexp.MustCompile(`brave[/\s]([\d.]+)`),
		OrderHint: 100,
	},
	{
		Name:      BrowserOpera,
		Keywords:  []string{"opr"},
		Regex:     regexp.MustCompile(`opr[/\s]([\d.]+)`),
		OrderHint: 110,
	},
	{
		Name:      BrowserOpera, // Alternative Opera browser detection
		Keywords:  []string{"opera"},
		Regex:     regexp.MustCompile(`opera[/\s]([\d.]+)`),
		OrderHint: 115,
	},
	{
		Name:      BrowserChrome,
		Keywords:  []string{"chrome"},
		Regex:     regexp.MustCompile(`chrome[/\s]([\d.]+)`),
		OrderHint: 120,
	},
	{
		Name:      BrowserFirefox,
		Keywords:  []string{"firefox"},
		Regex:     regexp.MustCompile(`firefox[/\s]([\d.]+)`),
		OrderHint: 130,
	},
	{
		Name:      BrowserSafari,
		Keywords:  []string{"safari"},
		Excludes:  []string{"chrome", "firefox"},
		Regex:     regexp.MustCompile(`version[/\s]([\d.]+)`),
		OrderHint: 140,
	},
	{
		Name:      BrowserIE,
		Keywords:  []string{"msie"},
		Regex:     regexp.MustCompile(`msie ([\d.]+)`),
		OrderHint: 150,
	},
}

func init() {
	sort.SliceStable(browserPatterns, func(i, j int) bool {
		return browserPatterns[i].OrderHint < browserPatterns[j].OrderHint
	})
}

// ParseBrowser detects the browser or HTTP client in a lower-cased UA string.
func ParseBrowser(lowerUA string) Browser {
	if lowerUA == "" {
		return Browser{Name: BrowserUnknown}
	}

	// IE 11 dropped the MSIE token and only announces Trident.
	if strings.Contains(lowerUA, "trident/") && !strings.Contains(lowerUA, "msie") {
		return Browser{Name: BrowserIE, Version: "11.0"}
	}

	for _, pattern := range browserPatterns {
		if pattern.matches(lowerUA) {
			return Browser{Name: pattern.Name, Version: extractVersion(lowerUA, pattern.Regex)}
		}
	}

	return Browser{Name: BrowserUnknown}
}
