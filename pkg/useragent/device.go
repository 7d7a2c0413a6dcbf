package useragent

import (
	"slices"
	"strings"
)

// keywordSet is a list of lower-case substrings; a UA matches when it
// contains any of them.
type keywordSet []string

func newKeywordSet(keywords ...string) keywordSet {
	return keywordSet(keywords)
}

func (k keywordSet) contains(s string) bool {
	return slices.ContainsFunc(k, func(kw string) bool {
		return strings.Contains(s, kw)
	})
}

var (
	libraryKeywords = newKeywordSet("curl/", "wget/", "postmanruntime", "insomnia/", "httpie/", "python-requests", "python-urllib", "okhttp", "apache-httpclient", "go-http-client", "java/", "restclient", "axios/", "node-fetch")
	botKeywords     = newKeywordSet("bot", "spider", "crawler", "archiver", "ping", "lighthouse", "slurp", "daum", "sogou", "yeti", "facebook", "twitter", "slack", "linkedin", "whatsapp", "telegram", "discord", "camo asset", "generator", "monitor", "analyzer", "validator", "fetcher", "scraper", "check")
	tabletKeywords  = newKeywordSet("tablet", "kindle", "silk")
	mobileKeywords  = newKeywordSet("mobile", "iphone", "android", "windows phone", "iemobile", "blackberry", "nokia")
	tvKeywords      = newKeywordSet("tv", "appletv", "smarttv", "googletv", "android tv", "webos", "tizen")
	consoleKeywords = newKeywordSet("playstation", "xbox", "nintendo", "wiiu", "switch")
	desktopKeywords = newKeywordSet("windows", "macintosh", "mac os x", "linux", "x11", "ubuntu", "fedora", "debian", "chromeos", "cros")
)

// deviceRule maps a UA predicate to a device type.
type deviceRule struct {
	match      func(lowerUA string) bool
	deviceType string
}

func has(token string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, token) }
}

func isWindowsTouch(s string) bool {
	return strings.Contains(s, "windows") &&
		(strings.Contains(s, "touch") || strings.Contains(s, "tablet"))
}

// deviceRules is evaluated top to bottom. HTTP libraries go first since they
// never carry browser device tokens; iOS tokens are unambiguous; Android
// tablets are the Android UAs without "mobile".
var deviceRules = []deviceRule{
	{libraryKeywords.contains, DeviceTypeLibrary},
	{has("ipad"), DeviceTypeTablet},
	{has("iphone"), DeviceTypeMobile},
	{botKeywords.contains, DeviceTypeBot},
	{func(s string) bool { return strings.Contains(s, "android") && strings.Contains(s, "mobile") }, DeviceTypeMobile},
	{has("android"), DeviceTypeTablet},
	{tabletKeywords.contains, DeviceTypeTablet},
	{mobileKeywords.contains, DeviceTypeMobile},
	{tvKeywords.contains, DeviceTypeTV},
	{consoleKeywords.contains, DeviceTypeConsole},
	{isWindowsTouch, DeviceTypeTablet},
	{desktopKeywords.contains, DeviceTypeDesktop},
}

// ParseDeviceType returns the device type of a lower-cased UA.
func ParseDeviceType(lowerUA string) string {
	if lowerUA == "" {
		return DeviceTypeUnknown
	}
	for _, rule := range deviceRules {
		if rule.match(lowerUA) {
			return rule.deviceType
		}
	}
	return DeviceTypeUnknown
}

type modelRule struct {
	match func(lowerUA string) bool
	model string
}

var mobileModels = []modelRule{
	{has("iphone"), MobileDeviceIPhone},
	{newKeywordSet("samsung", "sm-g", "sm-a", "sm-n", "samsungbrowser").contains, MobileDeviceSamsung},
	{newKeywordSet("huawei", "hwa-", "honor", "h60-", "h30-").contains, MobileDeviceHuawei},
	{newKeywordSet("xiaomi", "mi ", "redmi", "miui").contains, MobileDeviceXiaomi},
	{newKeywordSet("oppo", "cph1", "cph2", "f1f").contains, MobileDeviceOppo},
	{newKeywordSet("vivo", "viv-", "v1730", "v1731").contains, MobileDeviceVivo},
	{has("android"), MobileDeviceAndroid},
}

var tabletModels = []modelRule{
	{has("ipad"), TabletDeviceIPad},
	{isWindowsTouch, TabletDeviceSurface},
	{newKeywordSet("samsung", "sm-t", "gt-p", "sm-p").contains, TabletDeviceSamsung},
	{newKeywordSet("huawei", "mediapad", "agassi").contains, TabletDeviceHuawei},
	{newKeywordSet("kindle", "silk", "kftt", "kfjwi").contains, TabletDeviceKindleFire},
	{has("android"), TabletDeviceAndroid},
}

// GetDeviceModel names the brand of a mobile or tablet device. Other device
// types have no model and yield "".
func GetDeviceModel(lowerUA, deviceType string) string {
	var rules []modelRule
	var fallback string
	switch deviceType {
	case DeviceTypeMobile:
		rules, fallback = mobileModels, MobileDeviceUnknown
	case DeviceTypeTablet:
		rules, fallback = tabletModels, TabletDeviceUnknown
	default:
		return ""
	}
	for _, rule := range rules {
		if rule.match(lowerUA) {
			return rule.model
		}
	}
	return fallback
}
