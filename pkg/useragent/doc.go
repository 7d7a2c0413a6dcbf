// Package useragent classifies HTTP User-Agent strings.
//
// Parse runs three independent detectors over the lower-cased header:
// ParseDeviceType (device.go), ParseOS and ParseOSVersion (os.go) and
// ParseBrowser (browser.go). Each relies on keyword sets and a small number of
// pre-compiled regular expressions, so no external UA database is needed.
//
// On top of the parser sit two request-facing helpers:
//
//   - ParseFacets turns a UserAgent into display facets (browser, OS, device
//     family with versions and mobile/tablet/pc/bot flags). Nothing is ever
//     an error at this level; undetected values are reported as "Unknown".
//   - DetectClientType assigns a coarse ClientType (web_browser,
//     mobile_browser, android_app, api_tool, other, unknown) by ordered
//     keyword groups, independently of the facets.
//
// Classify returns both at once:
//
//	facets, client := useragent.Classify(r.UserAgent())
//	if client == useragent.ClientAPITool {
//	    // curl, Postman, HTTPie, ...
//	}
//
// HTTP libraries (curl, okhttp, python-requests, ...) get their own device
// type, DeviceTypeLibrary, and are reported through the browser facet so the
// caller can always tell which software sent the request.
package useragent
