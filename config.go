package jobtrack

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL     = "JOBTRACK_BASE_URL"
	EnvStoragePath = "JOBTRACK_STORAGE_PATH"
	EnvLoginPath   = "JOBTRACK_LOGIN_PATH"
	EnvTimezone    = "JOBTRACK_TIMEZONE"
)

var _ Config = Options{}

// Options is the file backed Config implementation
type Options struct {
	BaseURL     string `yaml:"base_url"`
	LoginPath   string `yaml:"login_path"`
	TokenKey    string `yaml:"token_key"`
	StoragePath string `yaml:"storage_path"`
	Timezone    string `yaml:"timezone"`
}

func (o Options) GetBaseURL() string     { return o.BaseURL }
func (o Options) GetLoginPath() string   { return o.LoginPath }
func (o Options) GetTokenKey() string    { return o.TokenKey }
func (o Options) GetStoragePath() string { return o.StoragePath }
func (o Options) GetTimezone() string    { return o.Timezone }

// DefaultOptions returns options with every field set
func DefaultOptions() Options {
	return Options{
		LoginPath:   DefaultLoginPath,
		TokenKey:    DefaultTokenKey,
		StoragePath: DefaultStoragePath(),
	}
}

// DefaultStoragePath is storage.json under the user config dir
func DefaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "jobtrack", "storage.json")
}

var pathRule = validation.Match(regexp.MustCompile(`^/`)).Error("must be an absolute path")

// Validate checks the options
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.BaseURL, is.URL),
		validation.Field(&o.LoginPath, validation.Required, pathRule),
		validation.Field(&o.TokenKey, validation.Required),
		validation.Field(&o.Timezone, validation.By(validTimezone)),
	)
	if err != nil {
		return errors.Wrap(err, ErrInvalidConfig.Category, ErrInvalidConfig.Message).
			WithTextCode(ErrInvalidConfig.TextCode)
	}
	return nil
}

// Location resolves the configured timezone, local time when unset
func (o Options) Location() (*time.Location, error) {
	return loadLocation(o.Timezone)
}

func validTimezone(value interface{}) error {
	s, _ := value.(string)
	_, err := loadLocation(s)
	return err
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// LoadConfig reads options from a YAML file, applies env overrides and
// fills defaults. A missing file is not an error.
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return opts, errors.Wrap(err, ErrInvalidConfig.Category, "unable to decode config file").
					WithTextCode(ErrInvalidConfig.TextCode).
					WithMetadata(map[string]any{"path": path})
			}
		case !os.IsNotExist(err):
			return opts, errors.Wrap(err, errors.CategoryInternal, "unable to read config file")
		}
	}

	opts = opts.withEnv().withDefaults()
	return opts, opts.Validate()
}

func (o Options) withEnv() Options {
	if v := os.Getenv(EnvBaseURL); v != "" {
		o.BaseURL = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		o.StoragePath = v
	}
	if v := os.Getenv(EnvLoginPath); v != "" {
		o.LoginPath = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		o.Timezone = v
	}
	return o
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.LoginPath == "" {
		o.LoginPath = def.LoginPath
	}
	if o.TokenKey == "" {
		o.TokenKey = def.TokenKey
	}
	if o.StoragePath == "" {
		o.StoragePath = def.StoragePath
	}
	return o
}
