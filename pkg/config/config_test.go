package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalManager = nil
		globalMu.Unlock()
	})
}

func TestInitialize(t *testing.T) {
	t.Run("registers default sections", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")

		require.NoError(t, Initialize(configPath))
		assert.True(t, IsInitialized())

		ids := []string{}
		for _, s := range Global().GetSections() {
			ids = append(ids, s.ID())
		}
		assert.Equal(t, []string{SectionIDBrowser, SectionIDBoard, SectionIDUI}, ids)

		require.NotNil(t, GetBrowser())
		require.NotNil(t, GetBoard())
		require.NotNil(t, GetUI())
		assert.Equal(t, DefaultDebuggingPort, GetBrowser().Snapshot().Port)
	})

	t.Run("loads stored values", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")
		raw := `{"version":"1.0","sections":{"browser":{"port":9333},"board":{"drag_steps":5,"confirm_timeout":"3s"}}}`
		require.NoError(t, os.WriteFile(configPath, []byte(raw), 0600))

		require.NoError(t, Initialize(configPath))
		assert.Equal(t, 9333, GetBrowser().Snapshot().Port)
		board := GetBoard().Snapshot()
		assert.Equal(t, 5, board.DragSteps)
		assert.Equal(t, 3*time.Second, board.ConfirmTimeout)
	})

	t.Run("rejects invalid stored values", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		raw := "version: \"1.0\"\nsections:\n  board:\n    orientation: sideways\n"
		require.NoError(t, os.WriteFile(configPath, []byte(raw), 0600))

		err := Initialize(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orientation")
		assert.False(t, IsInitialized())
	})
}

func TestGlobal(t *testing.T) {
	t.Run("panics when not initialized", func(t *testing.T) {
		resetGlobal(t)
		assert.Panics(t, func() { Global() })
	})

	t.Run("getters return nil when not initialized", func(t *testing.T) {
		resetGlobal(t)
		assert.Nil(t, GetBrowser())
		assert.Nil(t, GetBoard())
		assert.Nil(t, GetUI())
	})
}

func TestDefaultManager_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			manager, err := NewDefaultManager(configPath)
			require.NoError(t, err)

			browser, _ := manager.GetSection(SectionIDBrowser)
			require.NoError(t, browser.SetData(map[string]interface{}{
				"executable": "/opt/edge/msedge",
				"extra_args": []interface{}{"--mute-audio"},
			}))
			board, _ := manager.GetSection(SectionIDBoard)
			require.NoError(t, board.SetData(map[string]interface{}{
				"orientation":   "black",
				"confirm_moves": false,
			}))
			require.NoError(t, manager.SaveAll())

			reloaded, err := NewDefaultManager(configPath)
			require.NoError(t, err)

			b, _ := reloaded.GetSection(SectionIDBrowser)
			bs := b.(*BrowserSection).Snapshot()
			assert.Equal(t, "/opt/edge/msedge", bs.Executable)
			assert.Equal(t, []string{"--mute-audio"}, bs.ExtraArgs)
			assert.Equal(t, DefaultStartupTimeout, bs.StartupTimeout)

			bd, _ := reloaded.GetSection(SectionIDBoard)
			bds := bd.(*BoardSection).Snapshot()
			assert.Equal(t, "black", bds.Orientation)
			assert.False(t, bds.ConfirmMoves)
			assert.Equal(t, DefaultBoardSelectors, bds.Selectors)
		})
	}
}
