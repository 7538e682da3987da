// Package collection builds the list/get/create/update/delete commands
// shared by books and recipes.
package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
)

// NewCommand returns the parent command for one collection, e.g. "books".
func NewCommand(name, short string) *cobra.Command {
	parent := &cobra.Command{
		Use:   name,
		Short: short,
	}

	parent.AddCommand(
		listCmd(name),
		getCmd(name),
		createCmd(name),
		updateCmd(name),
		deleteCmd(name),
	)
	return parent
}

func listCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список записей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			items, err := app.List(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("ошибка получения списка: %w", err)
			}
			raw, err := json.Marshal(items)
			if err != nil {
				return err
			}
			return output.Print(raw)
		},
	}
}

func getCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Просмотреть запись",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := app.Get(cmd.Context(), name, args[0])
			if err != nil {
				return fmt.Errorf("ошибка получения записи: %w", err)
			}
			return output.Print(raw)
		},
	}
}

func createCmd(name string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create [json]",
		Short: "Создать запись",
		Long: `Создание записи. Тело передается аргументом или через --file
("-" читает stdin) и должно содержать id и все поля записи.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			body, err := readBody(args, file)
			if err != nil {
				return err
			}
			id, err := app.Create(cmd.Context(), name, body)
			if err != nil {
				return fmt.Errorf("ошибка создания записи: %w", err)
			}
			output.Success("Создана запись %d", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "файл с JSON телом записи")
	return cmd
}

func updateCmd(name string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update [id] [json]",
		Short: "Заменить запись",
		Long:  `Замена всех полей записи, кроме id.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			body, err := readBody(args[1:], file)
			if err != nil {
				return err
			}
			if err := app.Update(cmd.Context(), name, args[0], body); err != nil {
				return fmt.Errorf("ошибка обновления записи: %w", err)
			}
			output.Success("Запись %s обновлена", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "файл с JSON телом записи")
	return cmd
}

func deleteCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить запись",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Delete(cmd.Context(), name, args[0]); err != nil {
				return fmt.Errorf("ошибка удаления записи: %w", err)
			}
			output.Success("Запись %s удалена", args[0])
			return nil
		},
	}
}

// readBody takes the JSON body from the single positional argument or from file.
func readBody(args []string, file string) (json.RawMessage, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, fmt.Errorf("укажите тело аргументом или через --file, но не вместе")
	case len(args) == 1:
		return json.RawMessage(args[0]), nil
	case file == "-":
		b, err := io.ReadAll(os.Stdin)
		return b, err
	case file != "":
		return os.ReadFile(file)
	}
	return nil, fmt.Errorf("не передано тело записи")
}
