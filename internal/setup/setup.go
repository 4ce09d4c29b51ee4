// Package setup registers the studio MCP server with desktop MCP clients
// that read an "mcpServers" JSON config file.
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
)

// DefaultServerName is the key the server is registered under.
const DefaultServerName = "pedagogy-studio"

// ClientConfig is the client's config file. Unknown top-level keys are
// preserved across a load and save.
type ClientConfig struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
	extra      map[string]json.RawMessage
}

// ServerEntry launches one MCP server.
type ServerEntry struct {
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Options describes the server being registered.
type Options struct {
	Name       string // defaults to DefaultServerName
	BinaryPath string // found on PATH or in common locations when empty
	BackendURL string
	DataDir    string
}

// Status reports what a config file says about a registered server.
type Status struct {
	ConfigPath string      `json:"config_path" yaml:"config_path"`
	Registered bool        `json:"registered" yaml:"registered"`
	Entry      ServerEntry `json:"entry" yaml:"entry"`
	Servers    []string    `json:"servers" yaml:"servers"`
	Issues     []string    `json:"issues" yaml:"issues"`
}

// DefaultConfigPath returns the desktop client's config file for this OS.
func DefaultConfigPath() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", "claude_desktop_config.json"), nil
	default:
		dir := os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(home, ".config")
		}
		return filepath.Join(dir, "Claude", "claude_desktop_config.json"), nil
	}
}

// Load reads the config at path. A missing file is an empty config.
func Load(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{MCPServers: map[string]ServerEntry{}, extra: map[string]json.RawMessage{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg.extra); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw, ok := cfg.extra["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &cfg.MCPServers); err != nil {
			return nil, fmt.Errorf("failed to parse mcpServers: %w", err)
		}
		delete(cfg.extra, "mcpServers")
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]ServerEntry{}
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := make(map[string]any, len(cfg.extra)+1)
	for k, v := range cfg.extra {
		out[k] = v
	}
	out["mcpServers"] = cfg.MCPServers

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Register adds or replaces the server entry in the config at path and
// returns the entry written.
func Register(path string, opts Options) (ServerEntry, error) {
	cfg, err := Load(path)
	if err != nil {
		return ServerEntry{}, err
	}

	binary := opts.BinaryPath
	if binary == "" {
		if binary, err = FindBinary("mcp-server-lite"); err != nil {
			return ServerEntry{}, fmt.Errorf("could not find server binary: %w", err)
		}
	}

	entry := ServerEntry{Command: binary}
	if opts.BackendURL != "" || opts.DataDir != "" {
		entry.Env = map[string]string{}
		if opts.BackendURL != "" {
			entry.Env["PEDAGOGY_BACKEND_URL"] = opts.BackendURL
		}
		if opts.DataDir != "" {
			entry.Env["PEDAGOGY_DATA_DIR"] = opts.DataDir
		}
	}

	cfg.MCPServers[serverName(opts.Name)] = entry
	if err := Save(path, cfg); err != nil {
		return ServerEntry{}, err
	}
	return entry, nil
}

// Unregister removes the named entry. It reports whether one was present.
func Unregister(path, name string) (bool, error) {
	cfg, err := Load(path)
	if err != nil {
		return false, err
	}
	name = serverName(name)
	if _, ok := cfg.MCPServers[name]; !ok {
		return false, nil
	}
	delete(cfg.MCPServers, name)
	return true, Save(path, cfg)
}

// Inspect reports whether the named server is registered and whether its
// binary is usable.
func Inspect(path, name string) (*Status, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	status := &Status{ConfigPath: path}
	for n := range cfg.MCPServers {
		status.Servers = append(status.Servers, n)
	}
	sort.Strings(status.Servers)

	entry, ok := cfg.MCPServers[serverName(name)]
	if !ok {
		status.Issues = append(status.Issues, fmt.Sprintf("%s is not registered", serverName(name)))
		return status, nil
	}
	status.Registered = true
	status.Entry = entry

	info, err := os.Stat(entry.Command)
	switch {
	case err != nil:
		status.Issues = append(status.Issues, fmt.Sprintf("Server binary not found: %s", entry.Command))
	case info.Mode()&0111 == 0 && runtime.GOOS != "windows":
		status.Issues = append(status.Issues, fmt.Sprintf("Server binary is not executable: %s", entry.Command))
	}
	return status, nil
}

// FindBinary looks for name on PATH, then in the usual install locations.
func FindBinary(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	home, _ := os.UserHomeDir()
	locations := []string{
		"./" + name,
		"./build/" + name,
		filepath.Join(home, ".local", "bin", name),
		filepath.Join(home, "go", "bin", name),
		"/usr/local/bin/" + name,
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			if abs, err := filepath.Abs(loc); err == nil {
				return abs, nil
			}
			return loc, nil
		}
	}
	return "", fmt.Errorf("binary '%s' not found in common locations", name)
}

func serverName(name string) string {
	if name == "" {
		return DefaultServerName
	}
	return name
}
