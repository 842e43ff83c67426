package main

import (
	"os"

	"rampart/pkg/client"
	"rampart/pkg/config"
	"rampart/pkg/storage"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	if os.Getenv("RAMPART_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	store := storage.NewFileStore("", config.PositionsFile)
	game := client.NewGame(store)

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Rampart TD")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
