package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLocator(goos string, env map[string]string, files []string, onPath map[string]string) locator {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	return locator{
		goos:   goos,
		getenv: func(key string) string { return env[key] },
		exists: func(path string) bool { return present[path] },
		lookPath: func(name string) (string, error) {
			if p, ok := onPath[name]; ok {
				return p, nil
			}
			return "", errors.New("not found")
		},
	}
}

func TestLocator_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		loc        locator
		flavor     string
		configured string
		want       string
		wantErr    bool
	}{
		{
			name:   "linux edge stable",
			loc:    fakeLocator("linux", nil, []string{"/usr/bin/microsoft-edge-stable"}, nil),
			flavor: FlavorEdge,
			want:   "/usr/bin/microsoft-edge-stable",
		},
		{
			name:   "first candidate wins",
			loc:    fakeLocator("linux", nil, []string{"/usr/bin/microsoft-edge", "/usr/bin/microsoft-edge-beta"}, nil),
			flavor: FlavorEdge,
			want:   "/usr/bin/microsoft-edge",
		},
		{
			name:   "chromium from PATH",
			loc:    fakeLocator("linux", nil, nil, map[string]string{"chromium-browser": "/usr/lib/chromium/chromium-browser"}),
			flavor: FlavorChromium,
			want:   "/usr/lib/chromium/chromium-browser",
		},
		{
			name:   "macOS edge",
			loc:    fakeLocator("darwin", nil, []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}, nil),
			flavor: FlavorEdge,
			want:   "/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		},
		{
			name:   "windows edge in Program Files",
			loc:    fakeLocator("windows", nil, []string{`C:\Program Files\Microsoft\Edge\Application\msedge.exe`}, nil),
			flavor: FlavorEdge,
			want:   `C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
		},
		{
			name:       "configured path",
			loc:        fakeLocator("linux", nil, []string{"/opt/edge/msedge"}, nil),
			flavor:     FlavorEdge,
			configured: "/opt/edge/msedge",
			want:       "/opt/edge/msedge",
		},
		{
			name:       "configured command name",
			loc:        fakeLocator("linux", nil, nil, map[string]string{"brave": "/usr/bin/brave"}),
			configured: "brave",
			want:       "/usr/bin/brave",
		},
		{
			name:       "environment beats configured",
			loc:        fakeLocator("linux", map[string]string{EnvBrowserPath: "/env/edge"}, []string{"/env/edge", "/opt/edge/msedge"}, nil),
			configured: "/opt/edge/msedge",
			want:       "/env/edge",
		},
		{
			name:       "missing configured path does not fall back",
			loc:        fakeLocator("linux", nil, []string{"/usr/bin/microsoft-edge"}, nil),
			flavor:     FlavorEdge,
			configured: "/nope/msedge",
			wantErr:    true,
		},
		{
			name:    "nothing installed",
			loc:     fakeLocator("linux", nil, nil, nil),
			flavor:  FlavorEdge,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.loc.resolve(tt.flavor, tt.configured)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBrowserNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidatePaths(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		for _, flavor := range []string{FlavorEdge, FlavorChrome, FlavorChromium} {
			assert.NotEmpty(t, candidatePaths(flavor, goos), "%s/%s", goos, flavor)
		}
	}
	assert.Contains(t, candidatePaths("unknown", "linux"), "/usr/bin/microsoft-edge")
}
