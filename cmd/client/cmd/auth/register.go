// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

var withQuestions bool

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Shelfkeeper.

С флагом --questions сразу задаются три контрольных вопроса и ответы на них.
Порядок вопросов важен: при восстановлении ответы сверяются по позиции.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		email, err := prompt(stdin, "Email: ")
		if err != nil {
			return err
		}

		password, err := readPassword("Пароль: ")
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

		var questions []client.Answer
		if withQuestions {
			for i := 1; i <= questionCount; i++ {
				question, err := prompt(stdin, fmt.Sprintf("Вопрос %d: ", i))
				if err != nil {
					return err
				}
				answer, err := prompt(stdin, fmt.Sprintf("Ответ %d: ", i))
				if err != nil {
					return err
				}
				questions = append(questions, client.Answer{Question: question, Answer: answer})
			}
		}

		registered, err := app.Register(cmd.Context(), email, password, questions)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		output.Success("Пользователь %s зарегистрирован", registered)
		fmt.Println("Теперь вы можете войти в систему: shelfkeeper auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().BoolVarP(&withQuestions, "questions", "q", false, "задать контрольные вопросы")
}
