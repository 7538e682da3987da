// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Проверить email и пароль",
	Long: `Аутентификация на сервере Shelfkeeper.

Сервер не выдает токенов: команда лишь сообщает, подходят ли учетные данные.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		email, err := prompt(stdin, "Email: ")
		if err != nil {
			return err
		}
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}

		msg, err := app.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		output.Success("%s", msg)
		return nil
	},
}
