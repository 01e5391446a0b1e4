package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
)

var adminInput services.RegisterInput

// storerating admin:create --name … --email … --password …
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(db *gorm.DB) error {
			svc := services.NewAuthService(repositories.NewUserRepository(db), nil, nil)

			id, err := svc.CreateAdmin(cmd.Context(), adminInput)
			if e, ok := apperr.As(err); ok && len(e.Fields) > 0 {
				for field, msg := range e.Fields {
					fmt.Printf("  %s: %s\n", field, msg)
				}
			}
			if err != nil {
				return err
			}

			fmt.Printf("✅ Admin created (id %d)\n", id)
			return nil
		})
	},
}

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminInput.Name, "name", "", "full name (20-60 characters)")
	f.StringVar(&adminInput.Email, "email", "", "login email")
	f.StringVar(&adminInput.Password, "password", "", "password (8-16 characters, one uppercase, one symbol)")
	f.StringVar(&adminInput.Address, "address", "", "postal address")
	_ = adminCreateCmd.MarkFlagRequired("name")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
}
