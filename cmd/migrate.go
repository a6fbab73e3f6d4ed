package cmd

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	migrateDir  string
	migrateDSN  string
	migrateDown bool
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply SQL migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrateDir, "mysql://"+migrateDSN)
		if err != nil {
			fmt.Printf("Migration setup failed: %v\n", err)
			return
		}
		defer m.Close()

		if migrateDown {
			err = m.Steps(-1)
		} else {
			err = m.Up()
		}
		if err == migrate.ErrNoChange {
			fmt.Println("No pending migrations.")
			return
		}
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateDir, "dir", "d", "migrations", "Migrations directory")
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "MySQL DSN (user:pass@tcp(host:port)/db)")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back one migration")
	rootCmd.AddCommand(migrateCmd)
}
