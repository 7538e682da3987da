package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

var ResetCmd = &cobra.Command{
	Use:   "reset-password [email]",
	Short: "Сбросить пароль по контрольным вопросам",
	Long: `Установка нового пароля. Требуются ответы на все три контрольных
вопроса в том порядке, в котором они были заданы.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		answers, err := readAnswers(stdin)
		if err != nil {
			return err
		}

		password, err := readPassword("Новый пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := readPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		email, err := app.ResetPassword(cmd.Context(), args[0], password, answers)
		if err != nil {
			return fmt.Errorf("ошибка сброса пароля: %w", err)
		}

		output.Success("Пароль пользователя %s изменен", email)
		return nil
	},
}
