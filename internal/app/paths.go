package app

const (
	Name = "loveqr"

	// Config
	ConfigDir  = "/etc/loveqr"
	ConfigPath = "/etc/loveqr/config.yaml"
	EnvPrefix  = "LOVEQR"

	// Request defaults
	DefaultText   = "https://love.tsonit.com/"
	DefaultSize   = 300
	DefaultListen = "127.0.0.1:8787"
)
