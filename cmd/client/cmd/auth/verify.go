package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify [email]",
	Short: "Проверить ответы на контрольные вопросы",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		answers, err := readAnswers(stdin)
		if err != nil {
			return err
		}

		msg, err := app.VerifySecurityQuestions(cmd.Context(), args[0], answers)
		if err != nil {
			return fmt.Errorf("ошибка проверки: %w", err)
		}

		output.Success("%s", msg)
		return nil
	},
}
