package config

import (
	"flag"
	"fmt"
	"strings"
)

// stringList is a comma separated flag value.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(s string) error {
	*l = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// ParseFlags parses the global configuration flags from args and returns
// the config they describe together with the remaining arguments.
//
// Flags:
//
//	-backend store backend (memory, sqlite, postgres, system, vault)
//	-d database DSN
//	-timeout store operation timeout (e.g., "5s")
//	-keyring-service vault keyring name
//	-keyring-backends allowed vault keyring types, comma separated
//	-keyring-dir file keyring directory
//	-keyring-password file keyring password
//	-default-service service name used when none is given
//	-access-mode accessibility mode of saved items
//	-access-group access group of saved items
//	-log-level log level
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	cfg := &StructuredConfig{}
	var backends stringList

	fs := flag.NewFlagSet("keychain", flag.ContinueOnError)
	fs.StringVar(&cfg.Store.Backend, "backend", "", "Store backend")
	fs.StringVar(&cfg.Store.DB.DSN, "d", "", "Database DSN")
	fs.DurationVar(&cfg.Store.Timeout, "timeout", 0, "Store operation timeout (e.g., 5s)")
	fs.StringVar(&cfg.Store.Keyring.ServiceName, "keyring-service", "", "Vault keyring name")
	fs.Var(&backends, "keyring-backends", "Allowed vault keyring types, comma separated")
	fs.StringVar(&cfg.Store.Keyring.FileDir, "keyring-dir", "", "File keyring directory")
	fs.StringVar(&cfg.Store.Keyring.FilePassword, "keyring-password", "", "File keyring password")
	fs.StringVar(&cfg.Item.ServiceName, "default-service", "", "Default service name")
	fs.StringVar(&cfg.Item.AccessMode, "access-mode", "", "Accessibility mode of saved items")
	fs.StringVar(&cfg.Item.AccessGroup, "access-group", "", "Access group of saved items")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.Store.Keyring.Backends = backends

	return cfg, fs.Args(), nil
}
