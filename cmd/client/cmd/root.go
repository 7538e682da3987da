// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shelfkeeper/cmd/client/cmd/output"
	"shelfkeeper/internal/app/client"
	"shelfkeeper/internal/app/client/config"
	"shelfkeeper/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "shelfkeeper",
	Short: "Shelfkeeper - клиент каталога книг и рецептов",
	Long: `Shelfkeeper - консольный клиент для REST сервиса с книгами и рецептами.

Позволяет просматривать и редактировать коллекции, регистрировать
пользователей и восстанавливать пароль по контрольным вопросам.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги командной строки приоритетнее конфига
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	cmd.SetContext(client.WithApp(cmd.Context(), client.New(cfg, log)))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Shelfkeeper")
	rootCmd.PersistentFlags().StringVarP(&output.Format, "output", "o", "json", "формат вывода: json или yaml")
}
