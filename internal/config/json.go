package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Store struct {
		Backend string   `json:"backend"`
		Timeout Duration `json:"timeout"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Keyring struct {
			ServiceName  string   `json:"service_name"`
			Backends     []string `json:"backends"`
			FileDir      string   `json:"file_dir"`
			FilePassword string   `json:"file_password"`
		} `json:"keyring,omitempty"`
	} `json:"store,omitempty"`

	Item struct {
		ServiceName string `json:"service_name"`
		AccessMode  string `json:"access_mode"`
		AccessGroup string `json:"access_group"`
	} `json:"item,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Store: Store{
			Backend: jsonCfg.Store.Backend,
			Timeout: time.Duration(jsonCfg.Store.Timeout),
			DB: DB{
				DSN: jsonCfg.Store.DB.DSN,
			},
			Keyring: Keyring{
				ServiceName:  jsonCfg.Store.Keyring.ServiceName,
				Backends:     jsonCfg.Store.Keyring.Backends,
				FileDir:      jsonCfg.Store.Keyring.FileDir,
				FilePassword: jsonCfg.Store.Keyring.FilePassword,
			},
		},
		Item: Item{
			ServiceName: jsonCfg.Item.ServiceName,
			AccessMode:  jsonCfg.Item.AccessMode,
			AccessGroup: jsonCfg.Item.AccessGroup,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
