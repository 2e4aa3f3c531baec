package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/wallestreet",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			Host: "http://localhost:8000",
		},
		ShowSuggestions: true,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# WALL-E Street System Configuration
# Location: ~/.config/wallestreet/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config and exported files are stored
data_directory = "~/.local/share/wallestreet"
`
}

func GenerateUserConfigTemplate() string {
	return `# WALL-E Street User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[backend]
# Analysis API server URL
host = "http://localhost:8000"

# Google Docs export (optional)
# Create OAuth client credentials at https://console.cloud.google.com
[google]
client_id = ""
client_secret = ""
redirect_url = "http://localhost:3000/api/auth/callback/google"

# Show the suggestion prompts picker on startup
show_suggestions = true
`
}
