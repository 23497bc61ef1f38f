// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command korucli prints the adapters visible to a headless Vulkan
// instance as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/driver"
	"github.com/devblok/koru/driver/vulkan"
)

var (
	validation = flag.Bool("validation", false, "enable the validation layer")
	indent     = flag.Bool("indent", true, "indent the JSON output")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.WithError(err).Fatal("korucli")
	}
}

func run() error {
	if err := vulkan.Init(nil); err != nil {
		return err
	}
	cfg := vulkan.InstanceConfig{ApplicationName: "korucli", Validation: *validation}
	if *validation {
		cfg.Layers = []string{driver.KhrValidationLayerName}
	}
	drv, err := vulkan.New(cfg)
	if err != nil {
		return err
	}
	defer drv.Destroy()

	adapters, err := core.NewAdapterList(drv, drv.Instance())
	if err != nil {
		return err
	}

	var out []byte
	if *indent {
		out, err = json.MarshalIndent(adapters.Dump(), "", "  ")
	} else {
		out, err = json.Marshal(adapters.Dump())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s\n", out)
	return nil
}
