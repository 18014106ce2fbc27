// internal/commands/root_test.go
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mwiater/holonet/internal/logging"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		for _, name := range []string{"debug", "jsonMode", "baseURL", "pages", "timeout", "logFile"} {
			resetFlag(name)
		}
		if f := showConfigCmd.Flags().Lookup("yaml"); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		currentConfig = nil
	}
	reset()
	t.Cleanup(reset)
	t.Cleanup(func() { _ = logging.Close() })
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

// fakeSWAPI serves one listing page and exact-name search over three people.
func fakeSWAPI(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	people := []string{"Luke Skywalker", "Anakin Skywalker", "Yoda"}
	character := func(name string) map[string]any {
		return map[string]any{
			"name":      name,
			"homeworld": srv.URL + "/planets/1/",
			"starships": []string{srv.URL + "/starships/12/"},
			"species":   []string{},
		}
	}
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/people/":
			results := []map[string]any{}
			q := r.URL.Query().Get("search")
			for _, p := range people {
				if (q == "" && r.URL.Query().Get("page") == "1") || strings.EqualFold(p, q) {
					results = append(results, character(p))
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
		case "/planets/1/":
			fmt.Fprint(w, `{"name":"Tatooine","population":"200000","climate":"arid"}`)
		case "/starships/12/":
			fmt.Fprint(w, `{"name":"X-wing","cargo_capacity":"110","starship_class":"Starfighter"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	resetFlags(t)
	out, err := execute(t, "nonexistent")
	require.Error(t, err)
	assert.Contains(t, out, `unknown command "nonexistent" for "holonet"`)
}

func TestPersistentPreRunEMergesFileAndFlags(t *testing.T) {
	resetFlags(t)
	configPath := writeTempConfig(t, "baseURL: http://file.example/api\npages: 3\ntimeout: 7\nport: 8080\n")

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		// drop the values read from the temp file
		viper.SetConfigType("yaml")
		_ = viper.ReadConfig(strings.NewReader(""))
	})

	_ = rootCmd.PersistentFlags().Set("pages", "2")
	_ = rootCmd.PersistentFlags().Set("jsonMode", "true")
	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))

	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 2, cfg.Pages, "flag must override file")
	assert.Equal(t, "http://file.example/api", cfg.APIBase())
	assert.Equal(t, 7, cfg.TimeoutSeconds)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.JSONMode)
	assert.Equal(t, configPath, cfg.ConfigPath)
}

func TestPersistentPreRunERejectsInvalidConfig(t *testing.T) {
	resetFlags(t)
	_, err := execute(t, "show", "config", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--pages", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pages must be at least 1")
}

func TestShowConfig(t *testing.T) {
	resetFlags(t)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := execute(t, "show", "config", "--config", missing, "--pages", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Pages:           4")
	assert.Contains(t, out, "Base URL:        https://swapi.dev/api")

	resetFlag("pages")
	out, err = execute(t, "show", "config", "--config", missing, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "baseURL: https://swapi.dev/api")
	assert.Contains(t, out, "pages: 9")
}

func TestListCommands(t *testing.T) {
	resetFlags(t)
	out, err := execute(t, "list", "commands", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Commands and Subcommands:")
	for _, name := range []string{"holonet serve", "holonet search", "holonet index", "holonet show config"} {
		assert.Contains(t, out, name)
	}
}

func TestListCommandsJSON(t *testing.T) {
	resetFlags(t)
	out, err := execute(t, "list", "commands", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--jsonMode")
	require.NoError(t, err)

	start := strings.Index(out, "[")
	require.GreaterOrEqual(t, start, 0, "no JSON document in output: %s", out)
	var entries []commandEntry
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &entries))

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, "holonet", paths[0])
	assert.Contains(t, paths, "holonet list commands")
	assert.NotContains(t, paths, "holonet help")
	assert.NotContains(t, paths, "holonet completion")
}

func TestSearchCommandJSON(t *testing.T) {
	resetFlags(t)
	api := fakeSWAPI(t)

	out, err := execute(t, "search", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--baseURL", api.URL, "--pages", "1", "--jsonMode", "skywalker")
	require.NoError(t, err)

	start := strings.Index(out, "{\n")
	require.GreaterOrEqual(t, start, 0, "no JSON document in output: %s", out)
	var payload outcomeJSON
	require.NoError(t, json.NewDecoder(strings.NewReader(out[start:])).Decode(&payload))

	assert.True(t, payload.Fallback)
	require.Len(t, payload.Characters, 2)
	assert.Equal(t, "Anakin Skywalker", payload.Characters[0].CharacterName)
	assert.Equal(t, "Luke Skywalker", payload.Characters[1].CharacterName)
	assert.Equal(t, "X-wing", payload.Characters[0].Attributes.Starships[0].Name)
}

func TestSearchCommandText(t *testing.T) {
	resetFlags(t)
	color.NoColor = true
	api := fakeSWAPI(t)

	out, err := execute(t, "search", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--baseURL", api.URL, "--pages", "1", "Yoda")
	require.NoError(t, err)
	assert.Contains(t, out, `1 result(s) for "Yoda" (exact match)`)
	assert.Contains(t, out, "Tatooine (population 200000, climate arid)")
	assert.Contains(t, out, "X-wing (class Starfighter, cargo capacity 110)")
}

func TestSearchCommandNotFound(t *testing.T) {
	resetFlags(t)
	color.NoColor = true
	api := fakeSWAPI(t)

	out, err := execute(t, "search", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--baseURL", api.URL, "--pages", "1", "Jar", "Jar")
	require.ErrorIs(t, err, errNoResults)
	assert.Contains(t, out, `No characters found for "Jar Jar".`)
}

func TestSearchCommandIndexFailure(t *testing.T) {
	resetFlags(t)
	api := fakeSWAPI(t)

	api.Close()
	_, err := execute(t, "search", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--baseURL", api.URL, "--pages", "1", "Yoda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup: build name index")
}

func TestIndexCommand(t *testing.T) {
	resetFlags(t)
	color.NoColor = true
	api := fakeSWAPI(t)

	out, err := execute(t, "index", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--baseURL", api.URL, "--pages", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "3 names indexed")
	assert.Contains(t, out, "     0  Luke Skywalker")
	assert.Contains(t, out, "    15  Anakin Skywalker")
	assert.Contains(t, out, "    32  Yoda")
}
