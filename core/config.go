// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/devblok/koru/driver"
)

// Environment keys read by LoadConfiguration.
const (
	EnvValidation         = "KORU_VALIDATION"
	EnvLayers             = "KORU_LAYERS"
	EnvInstanceExtensions = "KORU_INSTANCE_EXTENSIONS"
	EnvDeviceExtensions   = "KORU_DEVICE_EXTENSIONS"
	EnvFeatures           = "KORU_FEATURES"
	EnvWindowTitle        = "KORU_WINDOW_TITLE"
	EnvWindowWidth        = "KORU_WINDOW_WIDTH"
	EnvWindowHeight       = "KORU_WINDOW_HEIGHT"
	EnvFps                = "KORU_FPS"
	EnvEventPollDelay     = "KORU_EVENT_POLL_DELAY"
)

// DefaultRequiredFeatures is the feature set an adapter must expose
// unless configured otherwise.
const DefaultRequiredFeatures = driver.FeatureTessellationShader

// Configuration defines a global engine configuration setting.
// It is passed by value and not changed after loading.
type Configuration struct {
	// Validation enables the validation layer and debug reporting
	Validation bool

	Layers             []string
	InstanceExtensions []string
	DeviceExtensions   []string
	RequiredFeatures   driver.Features

	Window WindowConfiguration
	Time   TimeConfiguration
}

// WindowConfiguration is used to configure the presentation window
type WindowConfiguration struct {
	Title  string
	Width  uint32
	Height uint32
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the event loop polling interval in milliseconds
	EventPollDelay int
}

// DefaultConfiguration returns the configuration used when nothing is set
// in the environment.
func DefaultConfiguration() Configuration {
	return Configuration{
		Validation:       true,
		Layers:           []string{driver.KhrValidationLayerName},
		DeviceExtensions: []string{driver.KhrSwapchainExtensionName},
		RequiredFeatures: DefaultRequiredFeatures,
		Window: WindowConfiguration{
			Title:  "Koru3D",
			Width:  800,
			Height: 600,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
	}
}

// LoadConfiguration reads the configuration from the environment, falling
// back to DefaultConfiguration for unset keys. Lists are comma separated.
func LoadConfiguration() (Configuration, error) {
	cfg := DefaultConfiguration()

	validation, err := strconv.ParseBool(envy.Get(EnvValidation, strconv.FormatBool(cfg.Validation)))
	if err != nil {
		return cfg, errors.Wrap(err, EnvValidation)
	}
	cfg.Validation = validation

	cfg.Layers = envList(EnvLayers, cfg.Layers)
	cfg.InstanceExtensions = envList(EnvInstanceExtensions, cfg.InstanceExtensions)
	cfg.DeviceExtensions = envList(EnvDeviceExtensions, cfg.DeviceExtensions)
	if !cfg.Validation {
		cfg.Layers = slices.DeleteFunc(cfg.Layers, func(name string) bool {
			return name == driver.KhrValidationLayerName
		})
	}

	features, err := driver.ParseFeatures(envy.Get(EnvFeatures, cfg.RequiredFeatures.String()))
	if err != nil {
		return cfg, errors.Wrap(err, EnvFeatures)
	}
	cfg.RequiredFeatures = features

	cfg.Window.Title = envy.Get(EnvWindowTitle, cfg.Window.Title)
	if cfg.Window.Width, err = envUint32(EnvWindowWidth, cfg.Window.Width); err != nil {
		return cfg, err
	}
	if cfg.Window.Height, err = envUint32(EnvWindowHeight, cfg.Window.Height); err != nil {
		return cfg, err
	}
	if cfg.Time.FramesPerSecond, err = envInt(EnvFps, cfg.Time.FramesPerSecond); err != nil {
		return cfg, err
	}
	if cfg.Time.EventPollDelay, err = envInt(EnvEventPollDelay, cfg.Time.EventPollDelay); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SeedDefaults parses dotenv formatted contents and sets every key that
// is not already present in the environment.
func SeedDefaults(contents string) error {
	defaults, err := godotenv.Unmarshal(contents)
	if err != nil {
		return errors.Wrap(err, "godotenv.Unmarshal()")
	}
	current := envy.Map()
	for key, value := range defaults {
		if _, ok := current[key]; !ok {
			envy.Set(key, value)
		}
	}
	return nil
}

// WithInstanceExtensions returns a copy of c that also requests exts,
// skipping names already listed.
func (c Configuration) WithInstanceExtensions(exts ...string) Configuration {
	list := append([]string(nil), c.InstanceExtensions...)
	for _, ext := range exts {
		if !slices.Contains(list, ext) {
			list = append(list, ext)
		}
	}
	c.InstanceExtensions = list
	return c
}

func envList(key string, def []string) []string {
	value := envy.Get(key, strings.Join(def, ","))
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func envInt(key string, def int) (int, error) {
	v, err := strconv.Atoi(envy.Get(key, strconv.Itoa(def)))
	if err != nil {
		return def, errors.Wrap(err, key)
	}
	return v, nil
}

func envUint32(key string, def uint32) (uint32, error) {
	v, err := strconv.ParseUint(envy.Get(key, strconv.FormatUint(uint64(def), 10)), 10, 32)
	if err != nil {
		return def, errors.Wrap(err, key)
	}
	return uint32(v), nil
}
