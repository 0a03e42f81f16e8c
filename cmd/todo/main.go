// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"code.hybscloud.com/rill"
	"code.hybscloud.com/rill/internal/config"
	"code.hybscloud.com/rill/internal/dom"
	"code.hybscloud.com/rill/internal/todoapp"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "config file path")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	env := todoapp.Env{
		Logger: logger,
		Doc:    dom.NewDocument(),
		Client: todoapp.NewHTTPClient(cfg.SourceURL, cfg.RequestTimeout),
		Store:  rill.NewStore(todoapp.NewState()),
		Input:  todoapp.NewLineSource(os.Stdin),
		Out:    os.Stdout,
	}

	rt := rill.New(rill.WithLogger(logger))
	os.Exit(rill.Supervise(rt, env, todoapp.Program(cfg.AutoLoad)))
}
