package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AuthCmd - родительская команда для всех операций с пользователем
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход, проверка контрольных вопросов и сброс пароля.`,
}

// questionCount - число контрольных вопросов у аккаунта
const questionCount = 3

var stdin = bufio.NewReader(os.Stdin)

// prompt печатает подсказку и читает строку целиком, пробелы в ответе сохраняются
func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

// readAnswers запрашивает три ответа в порядке вопросов аккаунта
func readAnswers(r *bufio.Reader) ([]string, error) {
	answers := make([]string, 0, questionCount)
	for i := 1; i <= questionCount; i++ {
		answer, err := prompt(r, fmt.Sprintf("Ответ %d: ", i))
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}
