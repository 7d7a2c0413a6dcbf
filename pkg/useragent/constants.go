package useragent

// Device types
const (
	DeviceTypeBot     = "bot"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeTV      = "tv"
	DeviceTypeConsole = "console"

	// DeviceTypeLibrary identifies HTTP client libraries and API tools
	// (curl, Postman, okhttp, ...). They have no physical device behind them.
	DeviceTypeLibrary = "library"

	DeviceTypeUnknown = "unknown"
)

// Mobile device models
const (
	MobileDeviceIPhone  = "iphone"
	MobileDeviceAndroid = "android"
	MobileDeviceSamsung = "samsung"
	MobileDeviceHuawei  = "huawei"
	MobileDeviceXiaomi  = "xiaomi"
	MobileDeviceOppo    = "oppo"
	MobileDeviceVivo    = "vivo"
	MobileDeviceUnknown = "unknown"
)

// Tablet device models
const (
	TabletDeviceIPad       = "ipad"
	TabletDeviceAndroid    = "android"
	TabletDeviceSamsung    = "samsung"
	TabletDeviceHuawei     = "huawei"
	TabletDeviceKindleFire = "kindle"
	TabletDeviceSurface    = "surface"
	TabletDeviceUnknown    = "unknown"
)

// Browser identifiers. Non-browser HTTP clients are reported through the
// same field so a single facet answers "what software sent this request".
const (
	BrowserChrome   = "chrome"
	BrowserFirefox  = "firefox"
	BrowserSafari   = "safari"
	BrowserEdge     = "edge"
	BrowserOpera    = "opera"
	BrowserIE       = "ie"
	BrowserSamsung  = "samsung"
	BrowserUC       = "uc"
	BrowserQQ       = "qq"
	BrowserHuawei   = "huawei"
	BrowserVivo     = "vivo"
	BrowserMIUI     = "miui"
	BrowserBrave    = "brave"
	BrowserVivaldi  = "vivaldi"
	BrowserYandex   = "yandex"
	BrowserUnknown  = "unknown"
	BrowserPostman  = "postman"
	BrowserInsomnia = "insomnia"
	BrowserCurl     = "curl"
	BrowserWget     = "wget"
	BrowserHTTPie   = "httpie"

	BrowserPythonRequests   = "python-requests"
	BrowserOkHTTP           = "okhttp"
	BrowserApacheHTTPClient = "apache-httpclient"
	BrowserGoHTTPClient     = "go-http-client"
)

// Operating systems
const (
	OSWindows      = "windows"
	OSWindowsPhone = "windows phone"
	OSMacOS        = "macos"
	OSiOS          = "ios"
	OSAndroid      = "android"
	OSLinux        = "linux"
	OSChromeOS     = "chromeos"
	OSHarmonyOS    = "harmonyos"
	OSFireOS       = "fireos"
	OSUnknown      = "unknown"
)
