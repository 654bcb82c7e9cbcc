package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-pwa/internal/config"
	"github.com/yourusername/quiz-pwa/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление схемой PostgreSQL (таблица kv_entries)",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			err := m.Up()
			if errors.Is(err, migrate.ErrNoChange) {
				log.Println("Изменений в миграциях не найдено, база данных уже актуальна.")
				return nil
			}
			return err
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить одну миграцию",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			return m.Steps(-1)
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Выставить версию и снять флаг dirty после неудачной миграции",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var version int
		if _, err := fmt.Sscanf(args[0], "%d", &version); err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			log.Printf("Forcing migration version to %d to clean dirty state...", version)
			return m.Force(version)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать текущую версию схемы",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Путь к config.yaml (по умолчанию CONFIG_PATH или config/config.yaml)")
	rootCmd.PersistentFlags().String("path", "", "Каталог с миграциями (перекрывает database.migrations_path)")

	rootCmd.AddCommand(upCmd, downCmd, forceCmd, versionCmd)
}

// withMigrator открывает соединение через lib/pq и выполняет fn над экземпляром migrate
func withMigrator(cmd *cobra.Command, fn func(m *migrate.Migrate) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	migrationsPath, _ := cmd.Flags().GetString("path")
	if migrationsPath == "" {
		migrationsPath = cfg.Database.MigrationsPath
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, migrationsPath)
	if err != nil {
		return err
	}

	if err := fn(m); err != nil {
		return err
	}
	log.Println("Success!")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}
