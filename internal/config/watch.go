package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch reloads the configuration whenever the config file in use changes
// and passes the result to onChange. It reports false when no config file
// was read, in which case there is nothing to watch.
func Watch(onChange func(cfg *Config, err error)) bool {
	if viper.ConfigFileUsed() == "" {
		return false
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(Load())
	})
	viper.WatchConfig()

	return true
}
