package browser

import (
	"errors"
	"time"
)

var (
	// ErrBrowserNotFound is returned when no browser executable can be located.
	ErrBrowserNotFound = errors.New("browser: executable not found")

	// ErrPortInUse is returned when the remote-debugging port is already bound.
	ErrPortInUse = errors.New("browser: debugging port already in use")

	// ErrInvalidPort is returned for a debugging port outside 1-65535.
	ErrInvalidPort = errors.New("browser: invalid debugging port")

	// ErrSessionClosed is returned by operations on a closed or disconnected session.
	ErrSessionClosed = errors.New("browser: session closed")

	// ErrNotInitialized is returned when Launch is called before Initialize.
	ErrNotInitialized = errors.New("browser: launcher not initialized")

	// ErrNoPage is returned when the connected browser exposes no tab.
	ErrNoPage = errors.New("browser: no open page")
)

// Settings configures how the browser is started.
type Settings struct {
	Flavor         string
	Executable     string
	Port           int
	StartURL       string
	StartupTimeout time.Duration
	UserDataDir    string
	ExtraArgs      []string
}

// Default values
const (
	DefaultPort           = 9223
	DefaultStartURL       = "https://www.chess.com/variants"
	DefaultStartupTimeout = 10 * time.Second

	// connectRetryInterval is the pause between CDP connection attempts.
	connectRetryInterval = 250 * time.Millisecond

	// terminateGrace is how long the process gets to exit after an interrupt.
	terminateGrace = 2 * time.Second

	// aliveTimeout bounds the liveness round trip.
	aliveTimeout = 3 * time.Second
)

// visibilityOverride keeps document.visibilityState at "visible" in every
// document so the site never pauses itself when the window is hidden.
const visibilityOverride = `Object.defineProperty(document,"visibilityState",{get:()=>"visible",configurable:true});` +
	`Object.defineProperty(document,"hidden",{get:()=>false,configurable:true});`

// throttlingFlags stop the browser from deprioritising a background or
// occluded board tab.
var throttlingFlags = []string{
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
	"--disable-background-media-suspend",
	"--disable-features=IntensiveWakeUpThrottling,CalculateNativeWinOcclusion",
}

func (s Settings) withDefaults() Settings {
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.StartURL == "" {
		s.StartURL = DefaultStartURL
	}
	if s.StartupTimeout == 0 {
		s.StartupTimeout = DefaultStartupTimeout
	}
	if s.Flavor == "" {
		s.Flavor = FlavorEdge
	}
	return s
}
