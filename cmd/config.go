package cmd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
)

// DefaultConfigName is the name of the config file looked up in the user's
// home directory.
const DefaultConfigName = ".jisp.toml"

// Config holds the settings read from a TOML config file.
type Config struct {
	Prompt         string   `toml:"prompt"`
	LexicalCapture bool     `toml:"lexical_capture"`
	HistoryFile    string   `toml:"history_file"`
	Prelude        []string `toml:"prelude"`
}

// LoadConfig decodes the config file at path.  When path is empty the default
// file in the home directory is used, and it is not an error for that file to
// be missing.
func LoadConfig(path string) (Config, error) {
	var c Config
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return c, nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	for _, key := range md.Undecoded() {
		glog.Warningf("%s: unknown config key %s", path, key)
	}
	glog.V(1).Infof("loaded config %s", path)
	return c, nil
}
