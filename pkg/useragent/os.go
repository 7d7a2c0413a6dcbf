package useragent

import (
	"regexp"
	"strings"
)

var (
	windowsPhoneKeywords = newKeywordSet("windows phone")
	windowsKeywords      = newKeywordSet("windows")
	iOSKeywords          = newKeywordSet("iphone", "ipad", "ipod")
	macOSKeywords        = newKeywordSet("macintosh", "mac os x")
	harmonyOSKeywords    = newKeywordSet("harmonyos")
	androidKeywords      = newKeywordSet("android", "dalvik")
	fireOSKeywords       = newKeywordSet("kindle", "silk")
	chromeOSKeywords     = newKeywordSet("cros", "chromeos", "chrome os")
	linuxKeywords        = newKeywordSet("linux", "ubuntu", "debian", "fedora", "mint", "x11")
)

// ParseOS identifies the operating system family.
// Windows is checked first since it dominates desktop traffic.
func ParseOS(lowerUA string) string {
	if lowerUA == "" {
		return OSUnknown
	}

	if windowsKeywords.contains(lowerUA) {
		if windowsPhoneKeywords.contains(lowerUA) {
			return OSWindowsPhone
		}
		return OSWindows
	}

	if iOSKeywords.contains(lowerUA) {
		return OSiOS
	}

	if macOSKeywords.contains(lowerUA) {
		return OSMacOS
	}

	// HarmonyOS devices also announce Android.
	if harmonyOSKeywords.contains(lowerUA) {
		return OSHarmonyOS
	}

	if fireOSKeywords.contains(lowerUA) {
		return OSFireOS
	}

	if androidKeywords.contains(lowerUA) {
		return OSAndroid
	}

	if chromeOSKeywords.contains(lowerUA) {
		return OSChromeOS
	}

	if linuxKeywords.contains(lowerUA) {
		return OSLinux
	}

	return OSUnknown
}

var (
	windowsNTRegex    = regexp.MustCompile(`windows nt (\d+\.\d+)`)
	windowsPhoneRegex = regexp.MustCompile(`windows phone(?: os)? (\d+(?:\.\d+)*)`)
	iOSVersionRegex   = regexp.MustCompile(`(?:iphone os|cpu os) (\d+(?:_\d+)*)`)
	macVersionRegex   = regexp.MustCompile(`mac os x (\d+(?:[_.]\d+)*)`)
	androidRegex      = regexp.MustCompile(`android[ /](\d+(?:\.\d+)*)`)
	harmonyRegex      = regexp.MustCompile(`harmonyos[ /]?(\d+(?:\.\d+)*)`)
	chromeOSRegex     = regexp.MustCompile(`cros \S+ (\d+(?:\.\d+)*)`)
)

// windowsNTVersions maps kernel versions to marketing names.
var windowsNTVersions = map[string]string{
	"10.0": "10",
	"6.3":  "8.1",
	"6.2":  "8",
	"6.1":  "7",
	"6.0":  "Vista",
	"5.2":  "XP",
	"5.1":  "XP",
}

// ParseOSVersion extracts the version of the given OS family.
// Returns an empty string when the UA carries no version token.
func ParseOSVersion(lowerUA, os string) string {
	switch os {
	case OSWindows:
		nt := firstGroup(windowsNTRegex, lowerUA)
		if name, ok := windowsNTVersions[nt]; ok {
			return name
		}
		return nt
	case OSWindowsPhone:
		return firstGroup(windowsPhoneRegex, lowerUA)
	case OSiOS:
		return strings.ReplaceAll(firstGroup(iOSVersionRegex, lowerUA), "_", ".")
	case OSMacOS:
		return strings.ReplaceAll(firstGroup(macVersionRegex, lowerUA), "_", ".")
	case OSAndroid, OSFireOS:
		return firstGroup(androidRegex, lowerUA)
	case OSHarmonyOS:
		return firstGroup(harmonyRegex, lowerUA)
	case OSChromeOS:
		return firstGroup(chromeOSRegex, lowerUA)
	}
	return ""
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
