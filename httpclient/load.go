package httpclient

import "github.com/kbukum/superfetch/config"

// LoadConfig reads the "http" section of the named configuration file and
// environment (see config.LoadConfig), then applies defaults.
//
//	http:
//	  base_url: https://api.example.com
//	  timeout: 30s
//	  headers:
//	    Accept: application/json
func LoadConfig(name string, opts ...config.LoaderOption) (Config, error) {
	var file struct {
		HTTP Config `mapstructure:"http"`
	}
	if err := config.LoadConfig(name, &file, opts...); err != nil {
		return Config{}, err
	}
	cfg := file.HTTP
	cfg.ApplyDefaults()
	return cfg, nil
}
