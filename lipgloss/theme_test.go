package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ grantview.Theme = lipgloss.DefaultTheme()
	})

	t.Run("is the dark theme", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lipgloss.DarkTheme().Palette(), lipgloss.DefaultTheme().Palette())
	})
}

func TestThemes_StatusColors(t *testing.T) {
	t.Parallel()

	themes := map[string]*lipgloss.Theme{
		"dark":  lipgloss.DarkTheme(),
		"light": lipgloss.LightTheme(),
	}

	for name, theme := range themes {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := theme.Palette()
			assert.NotEmpty(t, p.Success)
			assert.NotEmpty(t, p.Warning)
			assert.NotEmpty(t, p.Error)
			assert.NotEmpty(t, p.Info)
			assert.NotEmpty(t, p.Cyan)

			// Decision badges rely on these being distinguishable.
			colors := map[string]bool{p.Success: true, p.Warning: true, p.Error: true, p.Cyan: true}
			assert.Len(t, colors, 4)
		})
	}
}

func TestThemes_Styles(t *testing.T) {
	t.Parallel()

	styles := lipgloss.LightTheme().Styles()

	assert.NotEmpty(t, styles.ActiveTab.Foreground)
	assert.NotEmpty(t, styles.ActiveTab.Background)
	assert.NotEqual(t, styles.ActiveTab, styles.InactiveTab)
	assert.NotEmpty(t, styles.Bar.Foreground)
}

func TestByName(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()

		dark, err := lipgloss.ByName("dark")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.DarkTheme().Palette(), dark.Palette())

		light, err := lipgloss.ByName("light")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.LightTheme().Palette(), light.Palette())
	})

	t.Run("empty name falls back to dark", func(t *testing.T) {
		t.Parallel()

		theme, err := lipgloss.ByName("")
		require.NoError(t, err)
		assert.Equal(t, lipgloss.DarkTheme().Palette(), theme.Palette())
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := lipgloss.ByName("solarized")
		assert.Error(t, err)
	})
}
