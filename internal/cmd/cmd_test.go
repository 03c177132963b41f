package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"versesabout/internal/config"
	"versesabout/internal/logging"
	"versesabout/internal/ui"
)

const (
	topicsJSON = `[{"slug":"love","name":"Love"},{"slug":"hope","name":"Hope"},{"slug":"glory","name":"Glory"}]`
	loveJSON   = `{"verses":[` +
		`{"verse":"John 3:16","kjv":"<i>For God so loved the world</i>","esv":"For God so loved the world"},` +
		`{"verse":"1 John 4:8","kjv":"God is love.","esv":"God is love."}]}`
)

func newContentServer(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/slugs-name.json":       topicsJSON,
		"/verses-json/love.json": loveJSON,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("VERSESABOUT_API_BASE_URL", srv.URL)
	return srv
}

func resetFlags() {
	_ = rootCmd.PersistentFlags().Set("config", "")
	_ = topicsCmd.Flags().Set("search", "")
	_ = versesCmd.Flags().Set("translation", "")
	_ = versesCmd.Flags().Set("width", "0")
	_ = versesCmd.Flags().Set("plain", "false")
}

// executeCommand runs the root command with args against a clean viper and
// an empty config directory, returning captured stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return ansi.Strip(buf.String()), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "versesabout", rootCmd.Use)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"topics", "verses", "config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestTopicsCommand(t *testing.T) {
	newContentServer(t)

	out, err := executeCommand(t, "topics")
	require.NoError(t, err)
	assert.Equal(t, "love\tLove\nhope\tHope\nglory\tGlory\n", out)
}

func TestTopicsSearch(t *testing.T) {
	newContentServer(t)

	out, err := executeCommand(t, "topics", "--search", "LO")
	require.NoError(t, err)
	assert.Equal(t, "love\tLove\nglory\tGlory\n", out)
}

func TestTopicsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	t.Setenv("VERSESABOUT_API_BASE_URL", srv.URL)

	_, err := executeCommand(t, "topics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch topics")
}

func TestVersesCommand(t *testing.T) {
	newContentServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "default translation", args: []string{"verses", "love"}},
		{name: "esv", args: []string{"verses", "love", "--translation", "esv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"John 3:16",
				"For God so loved the world",
				"",
				"1 John 4:8",
				"God is love.",
			}, trimmedLines(out))
		})
	}
}

func TestVersesWrapsToWidth(t *testing.T) {
	newContentServer(t)

	out, err := executeCommand(t, "verses", "love", "--width", "12")
	require.NoError(t, err)

	lines := trimmedLines(out)
	require.Greater(t, len(lines), 5)
	assert.Equal(t, "John 3:16", lines[0])
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 12, "line %q too wide", l)
	}
}

func TestVersesPlainClips(t *testing.T) {
	newContentServer(t)
	t.Setenv("VERSESABOUT_RENDER_PLAIN_HEIGHT", "1")

	out, err := executeCommand(t, "verses", "love", "--plain", "--width", "12")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"John 3:16",
		"For God so",
		"",
		"1 John 4:8",
		"God is love.",
	}, trimmedLines(out))
}

func TestVersesErrors(t *testing.T) {
	newContentServer(t)

	_, err := executeCommand(t, "verses", "love", "--translation", "NIV")
	assert.Error(t, err)

	_, err = executeCommand(t, "verses", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to fetch verses for "missing"`)

	_, err = executeCommand(t, "verses")
	assert.Error(t, err)
}

func TestConfigShowDefaults(t *testing.T) {
	out, err := executeCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# config file: (none - using defaults)")
	assert.Contains(t, out, "theme: catppuccin-mocha")
	assert.Contains(t, out, "translation: KJV")
	assert.Contains(t, out, "environment: production")
	assert.Contains(t, out, "settle_interval_ms: 50")
}

func TestConfigShowEnvOverride(t *testing.T) {
	t.Setenv("VERSESABOUT_TUI_THEME", "dracula")

	out, err := executeCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "theme: dracula")
}

func TestConfigFileFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tui:\n  theme: solarized-light\n  content_width: 60\n"), 0o644))

	out, err := executeCommand(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# config file: "+path)
	assert.Contains(t, out, "theme: solarized-light")
	assert.Contains(t, out, "content_width: 60")
}

func TestConfigInvalid(t *testing.T) {
	t.Setenv("VERSESABOUT_RENDER_MODE", "webview")

	_, err := executeCommand(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.mode")
}

func TestConfigPath(t *testing.T) {
	out, err := executeCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "Default path: "+config.ConfigFile())
	assert.Contains(t, out, "VERSESABOUT_")
}

func TestLocaleTag(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want language.Tag
	}{
		{name: "unset", env: map[string]string{}, want: language.English},
		{name: "lang", env: map[string]string{"LANG": "de_DE.UTF-8"}, want: language.MustParse("de-DE")},
		{name: "lc_all wins", env: map[string]string{"LC_ALL": "fr_FR", "LANG": "de_DE"}, want: language.MustParse("fr-FR")},
		{name: "posix", env: map[string]string{"LANG": "C"}, want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
				t.Setenv(name, tt.env[name])
			}
			assert.Equal(t, tt.want, localeTag())
		})
	}
}

func TestUIOptions(t *testing.T) {
	cfg := config.Default()
	cfg.TUI.Translation = "ESV"
	cfg.TUI.Theme = "dracula"

	opts := uiOptions(cfg)
	assert.Equal(t, "ESV", opts.Translation.String())
	assert.Equal(t, "dracula", opts.Theme.Key)
	assert.Equal(t, 50, int(opts.SettleInterval.Milliseconds()))
	assert.Equal(t, 20, opts.MaxPolls)
}

func TestThemeWatcher(t *testing.T) {
	const file = "/tmp/config.yaml"
	tests := []struct {
		name string
		op   fsnotify.Op
		key  string
		want string
	}{
		{name: "write with new theme", op: fsnotify.Write, key: "dracula", want: "dracula"},
		{name: "create with new theme", op: fsnotify.Create, key: "solarized-light", want: "solarized-light"},
		{name: "unchanged theme", op: fsnotify.Write, key: "catppuccin-mocha"},
		{name: "unknown theme", op: fsnotify.Write, key: "neon"},
		{name: "remove", op: fsnotify.Remove, key: "dracula"},
		{name: "chmod", op: fsnotify.Chmod, key: "dracula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent []tea.Msg
			w := &themeWatcher{
				current: "catppuccin-mocha",
				send:    func(msg tea.Msg) { sent = append(sent, msg) },
				logger:  logging.NopLogger(),
			}

			ok := w.changed(fsnotify.Event{Name: file, Op: tt.op}, tt.key)
			if tt.want == "" {
				assert.False(t, ok)
				assert.Empty(t, sent)
				assert.Equal(t, "catppuccin-mocha", w.current)
				return
			}
			assert.True(t, ok)
			require.Len(t, sent, 1)
			assert.Equal(t, tt.want, sent[0].(ui.ThemeChangedMsg).Theme.Key)
			assert.Equal(t, tt.want, w.current)
		})
	}
}

func TestThemeWatcherSkipsRepeatedWrites(t *testing.T) {
	sent := 0
	w := &themeWatcher{
		current: "catppuccin-mocha",
		send:    func(tea.Msg) { sent++ },
		logger:  logging.NopLogger(),
	}
	e := fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write}

	assert.True(t, w.changed(e, "dracula"))
	assert.False(t, w.changed(e, "dracula"))
	assert.False(t, w.changed(e, "neon"))
	assert.True(t, w.changed(e, "catppuccin-mocha"))
	assert.Equal(t, 2, sent)
}

func trimmedLines(s string) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
