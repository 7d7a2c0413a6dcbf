package useragent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

func TestParseDeviceType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ua         string
		deviceType string
		model      string
	}{
		{"empty", "", useragent.DeviceTypeUnknown, ""},
		{"desktop", chromeDesktopUA, useragent.DeviceTypeDesktop, ""},
		{"iphone", safariMobileUA, useragent.DeviceTypeMobile, useragent.MobileDeviceIPhone},
		{"samsung phone", samsungBrowserUA, useragent.DeviceTypeMobile, useragent.MobileDeviceSamsung},
		{"samsung tablet", androidTabletUA, useragent.DeviceTypeTablet, useragent.TabletDeviceSamsung},
		{"surface", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; Touch) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36", useragent.DeviceTypeTablet, useragent.TabletDeviceSurface},
		{"playstation", "Mozilla/5.0 (PlayStation 5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Safari/605.1.15", useragent.DeviceTypeConsole, ""},
		{"bot", botUA, useragent.DeviceTypeBot, ""},
		{"curl", "curl/8.4.0", useragent.DeviceTypeLibrary, ""},
		{"python requests", "python-requests/2.31.0", useragent.DeviceTypeLibrary, ""},
		{"okhttp", okhttpUA, useragent.DeviceTypeLibrary, ""},
		{"uptime checker is a bot", "Uptime-Check/1.0", useragent.DeviceTypeBot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lowerUA := strings.ToLower(tt.ua)
			deviceType := useragent.ParseDeviceType(lowerUA)
			assert.Equal(t, tt.deviceType, deviceType)
			assert.Equal(t, tt.model, useragent.GetDeviceModel(lowerUA, deviceType))
		})
	}
}
