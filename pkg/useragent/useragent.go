package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserAgent is the parsed form of a User-Agent header.
type UserAgent struct {
	userAgent string

	deviceType  string
	deviceModel string

	os        string
	osVersion string

	browserName string
	browserVer  string
}

func (ua UserAgent) String() string      { return ua.userAgent }
func (ua UserAgent) UserAgent() string   { return ua.userAgent }
func (ua UserAgent) DeviceType() string  { return ua.deviceType }
func (ua UserAgent) DeviceModel() string { return ua.deviceModel }
func (ua UserAgent) OS() string          { return ua.os }
func (ua UserAgent) OSVersion() string   { return ua.osVersion }
func (ua UserAgent) BrowserName() string { return ua.browserName }
func (ua UserAgent) BrowserVer() string  { return ua.browserVer }

// BrowserInfo returns the browser name and version together.
func (ua UserAgent) BrowserInfo() Browser {
	return Browser{Name: ua.browserName, Version: ua.browserVer}
}

func (ua UserAgent) IsBot() bool     { return ua.deviceType == DeviceTypeBot }
func (ua UserAgent) IsMobile() bool  { return ua.deviceType == DeviceTypeMobile }
func (ua UserAgent) IsDesktop() bool { return ua.deviceType == DeviceTypeDesktop }
func (ua UserAgent) IsTablet() bool  { return ua.deviceType == DeviceTypeTablet }
func (ua UserAgent) IsTV() bool      { return ua.deviceType == DeviceTypeTV }
func (ua UserAgent) IsConsole() bool { return ua.deviceType == DeviceTypeConsole }
func (ua UserAgent) IsLibrary() bool { return ua.deviceType == DeviceTypeLibrary }

func (ua UserAgent) IsUnknown() bool {
	return ua.deviceType == DeviceTypeUnknown || ua.deviceType == ""
}

// BotName returns a display name for crawler user agents, or an empty string
// when the user agent is not a bot.
func (ua UserAgent) BotName() string {
	if !ua.IsBot() {
		return ""
	}
	return extractBotName(ua.userAgent)
}

// knownBots is checked in order; the first token found names the bot.
var knownBots = []struct{ token, name string }{
	{"adsbot", "AdsBot"},
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"yandexbot", "Yandexbot"},
	{"baidubot", "Baidubot"},
	{"twitterbot", "Twitterbot"},
	{"facebookexternalhit", "Facebook"},
	{"linkedinbot", "Linkedinbot"},
	{"slackbot", "Slackbot"},
	{"telegrambot", "Telegrambot"},
}

// genericBotName captures the word ending in bot, spider or crawler.
var genericBotName = regexp.MustCompile(`(?i)([a-z0-9\-_]+(?:bot|spider|crawler))`)

func extractBotName(userAgent string) string {
	lowerUA := strings.ToLower(userAgent)
	for _, b := range knownBots {
		if strings.Contains(lowerUA, b.token) {
			return b.name
		}
	}
	if m := genericBotName.FindStringSubmatch(userAgent); len(m) > 1 {
		return cases.Title(language.English).String(strings.ToLower(m[1]))
	}
	return "Unknown Bot"
}

// Parse parses a User-Agent header.
// The returned UserAgent is always usable: on error it carries whatever could
// be detected, with unknown values for the rest.
func Parse(ua string) (UserAgent, error) {
	if ua == "" {
		return New("", DeviceTypeUnknown, "", OSUnknown, BrowserUnknown, ""), ErrEmptyUserAgent
	}

	lowerUA := strings.ToLower(ua)

	deviceType := ParseDeviceType(lowerUA)
	os := ParseOS(lowerUA)
	browser := ParseBrowser(lowerUA)

	parsed := New(ua, deviceType, GetDeviceModel(lowerUA, deviceType), os, browser.Name, browser.Version)
	parsed.osVersion = ParseOSVersion(lowerUA, os)

	if deviceType == DeviceTypeUnknown {
		if os == OSUnknown && browser.Name == BrowserUnknown {
			return parsed, ErrMalformedUserAgent
		}
		return parsed, ErrUnknownDevice
	}

	return parsed, nil
}

// New builds a UserAgent from already classified parts.
func New(ua, deviceType, deviceModel, os, browserName, browserVer string) UserAgent {
	return UserAgent{
		userAgent:   ua,
		deviceType:  deviceType,
		deviceModel: deviceModel,
		os:          os,
		browserName: browserName,
		browserVer:  browserVer,
	}
}
