package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// session is a single launched browser process and its CDP connection.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launch starts a fresh headless browser with stability flags.
// An empty bin lets rod find or download a browser. The browser process
// and the CDP connection are bound to ctx.
func launch(ctx context.Context, bin string) (*session, error) {
	lnchr := launcher.New().
		Context(ctx).
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-setuid-sandbox").
		Set("disable-hang-monitor").
		NoSandbox(true).
		Leakless(true).
		Headless(true)
	if bin != "" {
		lnchr = lnchr.Bin(bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		lnchr.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &session{browser: browser, launcher: lnchr}, nil
}

// pid returns the process ID of the browser.
func (s *session) pid() int {
	return s.launcher.PID()
}

// close shuts down the browser, kills the process, and removes its
// profile directory. The process is killed even if closing the
// connection fails.
func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}
