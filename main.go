// Package main is the entry point for playdeck.
package main

import (
	"github.com/playdeck/playdeck/cmd"
	"github.com/playdeck/playdeck/config"
	"github.com/playdeck/playdeck/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Level and format follow edits to the config file while the controls run.
	config.Watch(func(path string) {
		log.Reload()
		log.Infof("reloaded %s", path)
	})

	cmd.Execute()
}
