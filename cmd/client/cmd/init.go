// cmd/client/cmd/init.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/auth"
	"shelfkeeper/cmd/client/cmd/collection"
	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить соединение с сервером",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.CheckConnection(cmd.Context()); err != nil {
			return fmt.Errorf("сервер недоступен: %w", err)
		}
		output.Success("Соединение с сервером установлено")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)

	// Команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.VerifyCmd)
	auth.AuthCmd.AddCommand(auth.ResetCmd)

	// Коллекции
	rootCmd.AddCommand(collection.NewCommand(client.Books, "Работа с книгами"))
	rootCmd.AddCommand(collection.NewCommand(client.Recipes, "Работа с рецептами"))
}
