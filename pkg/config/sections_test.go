package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserSection(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		s := NewBrowserSection()
		require.NoError(t, s.Validate())
		snap := s.Snapshot()
		assert.Equal(t, "edge", snap.Flavor)
		assert.Equal(t, 9223, snap.Port)
		assert.Equal(t, "https://www.chess.com/variants", snap.StartURL)
	})

	t.Run("accepts json numbers and duration strings", func(t *testing.T) {
		s := NewBrowserSection()
		require.NoError(t, s.SetData(map[string]interface{}{
			"port":            float64(9400),
			"startup_timeout": "30s",
			"unknown":         "ignored",
		}))
		snap := s.Snapshot()
		assert.Equal(t, 9400, snap.Port)
		assert.Equal(t, 30*time.Second, snap.StartupTimeout)
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		s := NewBrowserSection()
		assert.Error(t, s.SetData(map[string]interface{}{"port": "9223"}))
		assert.Error(t, s.SetData(map[string]interface{}{"port": 92.5}))
		assert.Error(t, s.SetData(map[string]interface{}{"extra_args": []interface{}{1}}))
		assert.Error(t, s.SetData(map[string]interface{}{"startup_timeout": "soon"}))
	})

	t.Run("validates ranges", func(t *testing.T) {
		cases := []map[string]interface{}{
			{"port": 80},
			{"flavor": "firefox"},
			{"start_url": ""},
			{"startup_timeout": "10ms"},
		}
		for _, data := range cases {
			s := NewBrowserSection()
			require.NoError(t, s.SetData(data))
			assert.Error(t, s.Validate(), "%v", data)
		}
	})

	t.Run("override keeps stored values for zero flags", func(t *testing.T) {
		s := NewBrowserSection()
		s.Override("", 0, "")
		assert.Equal(t, DefaultDebuggingPort, s.Snapshot().Port)

		s.Override("/usr/bin/chromium", 9555, "https://www.chess.com/play/online")
		snap := s.Snapshot()
		assert.Equal(t, "/usr/bin/chromium", snap.Executable)
		assert.Equal(t, 9555, snap.Port)
		assert.Equal(t, "https://www.chess.com/play/online", snap.StartURL)
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		s := NewBrowserSection()
		s.Override("/x", 9999, "https://example.com")
		s.Reset()
		assert.Equal(t, NewBrowserSection().Snapshot(), s.Snapshot())
	})
}

func TestBoardSection(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		s := NewBoardSection()
		require.NoError(t, s.Validate())
		snap := s.Snapshot()
		assert.Equal(t, 3, snap.DragSteps)
		assert.True(t, snap.ConfirmMoves)
		assert.Equal(t, "auto", snap.Orientation)
		assert.Equal(t, ".TheBoard-squares", snap.Selectors[0])
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		s := NewBoardSection()
		snap := s.Snapshot()
		snap.Selectors[0] = "changed"
		assert.Equal(t, ".TheBoard-squares", s.Snapshot().Selectors[0])
	})

	t.Run("yaml ints are accepted", func(t *testing.T) {
		s := NewBoardSection()
		require.NoError(t, s.SetData(map[string]interface{}{"drag_steps": 7}))
		assert.Equal(t, 7, s.Snapshot().DragSteps)
	})

	t.Run("durations need a unit", func(t *testing.T) {
		for _, raw := range []interface{}{1500, int64(1500), 1500.0} {
			s := NewBoardSection()
			err := s.SetData(map[string]interface{}{"confirm_timeout": raw})
			require.Error(t, err, "%T", raw)
			assert.Contains(t, err.Error(), `"1500ms"`)
		}

		s := NewBoardSection()
		require.NoError(t, s.SetData(map[string]interface{}{"confirm_timeout": "1500ms", "promotion_timeout": 2 * time.Second}))
		assert.Equal(t, 1500*time.Millisecond, s.Snapshot().ConfirmTimeout)
		assert.Equal(t, 2*time.Second, s.Snapshot().PromotionTimeout)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []map[string]interface{}{
			{"selectors": []interface{}{}},
			{"selectors": []interface{}{""}},
			{"drag_steps": 0},
			{"promotion_timeout": "0s"},
			{"confirm_timeout": "0s"},
			{"orientation": "left"},
			{"require_board_page": true, "page_patterns": []interface{}{}},
		}
		for _, data := range cases {
			s := NewBoardSection()
			require.NoError(t, s.SetData(data))
			assert.Error(t, s.Validate(), "%v", data)
		}
	})

	t.Run("confirm timeout ignored when confirmation is off", func(t *testing.T) {
		s := NewBoardSection()
		require.NoError(t, s.SetData(map[string]interface{}{"confirm_moves": false, "confirm_timeout": "0s"}))
		assert.NoError(t, s.Validate())
	})
}

func TestUISection(t *testing.T) {
	s := NewUISection()
	require.NoError(t, s.Validate())
	assert.True(t, s.ColorEnabled())
	assert.False(t, s.TUIEnabled())
	assert.Equal(t, "monokai", s.Style())
	assert.Equal(t, "info", s.Level())
	assert.True(t, s.ClipboardEnabled())

	s.SetColor(false)
	s.SetTUI(true)
	assert.Equal(t, false, s.Data()["color"])
	assert.Equal(t, true, s.Data()["tui"])

	require.NoError(t, s.SetData(map[string]interface{}{"highlight_style": "no-such-style"}))
	assert.Error(t, s.Validate())

	s.Reset()
	require.NoError(t, s.SetData(map[string]interface{}{"log_level": "loud"}))
	assert.Error(t, s.Validate())

	assert.Error(t, s.SetData(map[string]interface{}{"clipboard": "yes"}))
}
