// huetune - A colour palette tuner
//
// huetune anneals a UI theme's foreground and background colours so they
// keep enough contrast, stay distinguishable from each other and remain
// legible under common colour vision deficiencies.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/huetune/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
