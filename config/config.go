/*
 * MilkyGo - UCI chess engine in GO
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package config holds all globally configurable values for the engine.
// Each sub-config seeds in-code defaults via init(); Setup() then overlays
// a TOML file on top of those defaults if one is present.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// globally available config values
var (
	// LogLevel defines the general log level set by default or given by the command line arguments
	LogLevel = 4

	// SearchLogLevel defines the search log level set by default or given by the command line arguments
	SearchLogLevel = 4

	// TestLogLevel defines the log level used by test code
	TestLogLevel = 2

	// Settings is the global configuration read in from file
	Settings conf

	// ConfigFile is the path to the TOML configuration file. May be
	// overridden before Setup() is called.
	ConfigFile = "./config.toml"

	initialized = false
)

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads the configuration file (if present) and fills in every
// sub-config's defaults for anything the file did not set. Safe to call
// more than once; only the first call has an effect.
func Setup() {
	if initialized {
		return
	}

	if _, err := toml.DecodeFile(ConfigFile, &Settings); err != nil {
		fmt.Println("no config file loaded, using defaults:", err)
	}

	setupLogLvl()
	setupSearch()
	setupEval()

	initialized = true
}
