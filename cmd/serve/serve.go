// Package serve contains the command that runs the upload HTTP server.
package serve

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/metwallusion/BankStatement/internal/api"
	"github.com/metwallusion/BankStatement/internal/logging"
)

var addrFlag string

// Cmd starts the converter as an HTTP service.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement converter as an HTTP upload service",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fiber.New(fiber.Config{
			BodyLimit: 32 << 20, // statement PDFs are small; 32MB is generous
		})
		api.NewHandler().Register(app)

		logging.GetLogger().WithField("addr", addrFlag).Info("listening")
		return app.Listen(addrFlag)
	},
}

func init() {
	Cmd.Flags().StringVarP(&addrFlag, "addr", "a", ":8080", "listen address")
}
