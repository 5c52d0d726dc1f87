package browser

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var chromePathsMacOS = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
	"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
	"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
}

var chromePathsLinux = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
}

func chromePathsWindows(getenv func(string) string) []string {
	return []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		filepath.Join(getenv("LOCALAPPDATA"), `Google\Chrome\Application\chrome.exe`),
		`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
	}
}

// ErrChromeNotFound is returned when no browser executable can be located
var ErrChromeNotFound = errors.New("Chrome/Chromium not found. Install Chrome or set CHROME_PATH environment variable")

type pathProbe struct {
	goos     string
	getenv   func(string) string
	exists   func(string) bool
	lookPath func(string) (string, error)
}

// DetectChromePath finds a Chrome-compatible browser executable
func DetectChromePath() (string, error) {
	return pathProbe{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
		exists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
		lookPath: exec.LookPath,
	}.detect()
}

func (p pathProbe) detect() (string, error) {
	for _, env := range []string{"CHROME_PATH", "PUPPETEER_EXECUTABLE_PATH"} {
		if v := p.getenv(env); v != "" && p.exists(v) {
			return v, nil
		}
	}

	var candidates []string
	switch p.goos {
	case "darwin":
		candidates = chromePathsMacOS
	case "windows":
		candidates = chromePathsWindows(p.getenv)
	default:
		candidates = chromePathsLinux
	}
	for _, c := range candidates {
		if p.exists(c) {
			return c, nil
		}
	}

	if p.goos == "linux" {
		for _, name := range []string{"google-chrome", "chromium-browser", "chromium"} {
			if path, err := p.lookPath(name); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrChromeNotFound
}
