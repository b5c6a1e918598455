// Icongen regenerates the app and tray icon bitmaps from the
// canonical gopher artwork. It takes no flags: paths are fixed
// relative to the working directory (see icongen.DefaultConfig).
package main

import (
	"log"

	"github.com/benoitkugler/icongen"
	"github.com/benoitkugler/icongen/render"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[icongen] ")
	if _, err := icongen.Build(icongen.DefaultConfig, render.Detect(), log.Printf); err != nil {
		log.Fatal(err)
	}
}
