// aegis-devserver runs a local, in-memory Aegis OS API server. It serves
// every endpoint the SDK knows about with canned data, so applications can
// develop against the API without credentials or network access.
package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aegis-os/sdk-go/internal/devserver"
)

func main() {
	addr := flag.String("addr", ":8801", "Listen address")
	flag.Parse()

	app := fiber.New(fiber.Config{
		AppName: "aegis-devserver",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	devserver.NewServer().Register(app)

	log.Printf("aegis-devserver listening on %s", *addr)
	if err := app.Listen(*addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
