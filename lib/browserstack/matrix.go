package browserstack

import "headlinewatch/lib/browser"

var galaxyS23 = &browser.DeviceProfile{
	Name:              "Samsung Galaxy S23",
	UserAgent:         "Mozilla/5.0 (Linux; Android 13; SM-S911B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36",
	ViewportWidth:     360,
	ViewportHeight:    780,
	DeviceScaleFactor: 3,
	IsMobile:          true,
	HasTouch:          true,
}

var iphone15 = &browser.DeviceProfile{
	Name:              "iPhone 15",
	UserAgent:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
	ViewportWidth:     393,
	ViewportHeight:    852,
	DeviceScaleFactor: 3,
	IsMobile:          true,
	HasTouch:          true,
}

// DefaultMatrix is the standard coverage run, three desktop combos
// plus two emulated phones.
func DefaultMatrix(build string) []Capabilities {
	return []Capabilities{
		{
			Label:          "Chrome on Windows 11",
			SessionName:    "ElPais_Chrome_Win11",
			Build:          build,
			OS:             "Windows",
			OSVersion:      "11",
			Browser:        "chrome",
			BrowserVersion: "latest",
			Engine:         browser.EngineChromium,
		},
		{
			Label:          "Firefox on Windows 10",
			SessionName:    "ElPais_Firefox_Win10",
			Build:          build,
			OS:             "Windows",
			OSVersion:      "10",
			Browser:        "playwright-firefox",
			BrowserVersion: "latest",
			Engine:         browser.EngineFirefox,
		},
		{
			Label:          "Safari on macOS Ventura",
			SessionName:    "ElPais_Webkit_macOS",
			Build:          build,
			OS:             "OS X",
			OSVersion:      "Ventura",
			Browser:        "playwright-webkit",
			BrowserVersion: "latest",
			Engine:         browser.EngineWebkit,
		},
		{
			Label:          "Samsung Galaxy S23 (emulated Chrome)",
			SessionName:    "ElPais_Chrome_GalaxyS23",
			Build:          build,
			OS:             "Windows",
			OSVersion:      "11",
			Browser:        "chrome",
			BrowserVersion: "latest",
			Engine:         browser.EngineChromium,
			Device:         galaxyS23,
		},
		{
			Label:          "iPhone 15 (emulated WebKit)",
			SessionName:    "ElPais_Webkit_iPhone15",
			Build:          build,
			OS:             "OS X",
			OSVersion:      "Ventura",
			Browser:        "playwright-webkit",
			BrowserVersion: "latest",
			Engine:         browser.EngineWebkit,
			Device:         iphone15,
		},
	}
}
