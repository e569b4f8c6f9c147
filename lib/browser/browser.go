// Package browser manages playwright lifecycles for scrape runs, both
// locally launched chromium and remote sessions reached over a
// websocket endpoint.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// DeviceProfile emulates a phone through context options. A nil
// profile means a plain desktop viewport.
type DeviceProfile struct {
	Name              string
	UserAgent         string
	ViewportWidth     int
	ViewportHeight    int
	DeviceScaleFactor float64
	IsMobile          bool
	HasTouch          bool
}

// Engine names a playwright browser engine. Remote connects have to
// use the engine the session actually runs, the protocol handshake is
// engine specific.
type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebkit   Engine = "webkit"
)

func (e Engine) browserType(pw *playwright.Playwright) playwright.BrowserType {
	switch e {
	case EngineFirefox:
		return pw.Firefox
	case EngineWebkit:
		return pw.WebKit
	default:
		return pw.Chromium
	}
}

type Options struct {
	Headless bool
	// Locale is passed to the browser context, the scraped site serves
	// language variants based on it.
	Locale string
	// Engine picks the browser engine for remote connects, defaulting
	// to chromium. Local launches are always chromium.
	Engine Engine
	Device *DeviceProfile
}

// Session owns one browser, one context and one page. Close releases
// all three but leaves the shared playwright driver running.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

var (
	pwOnce     sync.Once
	pwInstance *playwright.Playwright
	pwErr      error
)

// runPlaywright starts the driver once per process. Remote-only use
// skips downloading browser binaries.
func runPlaywright(skipBrowsers bool) (*playwright.Playwright, error) {
	pwOnce.Do(func() {
		err := playwright.Install(&playwright.RunOptions{
			SkipInstallBrowsers: skipBrowsers,
		})
		if err != nil {
			pwErr = fmt.Errorf("install playwright: %w", err)
			return
		}
		pwInstance, pwErr = playwright.Run()
	})
	return pwInstance, pwErr
}

func Launch(ctx context.Context, opts Options) (*Session, error) {
	pw, err := runPlaywright(false)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "launching local chromium", "headless", opts.Headless)
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--lang=es"},
	})
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return newSession(pw, browser, opts)
}

func Connect(ctx context.Context, wsEndpoint string, opts Options) (*Session, error) {
	pw, err := runPlaywright(true)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "connecting to remote browser", "engine", opts.Engine)
	browser, err := opts.Engine.browserType(pw).Connect(wsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("connect to remote browser: %w", err)
	}
	return newSession(pw, browser, opts)
}

func newSession(pw *playwright.Playwright, browser playwright.Browser, opts Options) (*Session, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.Locale != "" {
		ctxOpts.Locale = playwright.String(opts.Locale)
	}
	if d := opts.Device; d != nil {
		ctxOpts.UserAgent = playwright.String(d.UserAgent)
		ctxOpts.Viewport = &playwright.Size{
			Width:  d.ViewportWidth,
			Height: d.ViewportHeight,
		}
		ctxOpts.IsMobile = playwright.Bool(d.IsMobile)
		ctxOpts.HasTouch = playwright.Bool(d.HasTouch)
		if d.DeviceScaleFactor > 0 {
			ctxOpts.DeviceScaleFactor = playwright.Float(d.DeviceScaleFactor)
		}
	}

	browserCtx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Session{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		page:    page,
	}, nil
}

func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) Close() error {
	if err := s.context.Close(); err != nil {
		slog.Warn("failed to close browser context", "err", err)
	}
	return s.browser.Close()
}
