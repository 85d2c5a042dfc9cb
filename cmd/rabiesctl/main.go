// rabiesctl is the operator CLI: schema migration and provisioning of
// clinics, staff and admin accounts, none of which have a self-service
// path.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/Ang3lito/rabiesresq/config"
	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository/postgres"
	"github.com/Ang3lito/rabiesresq/internal/schema"
	clinicService "github.com/Ang3lito/rabiesresq/internal/service/clinic"
	"github.com/Ang3lito/rabiesresq/pkg/logger"
	"github.com/Ang3lito/rabiesresq/pkg/security"
)

func main() {
	root := &cobra.Command{
		Use:   "rabiesctl",
		Short: "Operational tooling for the RabiesResQ case-management service",
	}
	root.AddCommand(
		newMigrateCommand(),
		newCreateClinicCommand(),
		newCreateStaffCommand(),
		newCreateAdminCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := postgres.NewDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := schema.Create(db); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
			fmt.Println("schema applied")
			return nil
		},
	}
}

func newCreateClinicCommand() *cobra.Command {
	var name, address, contact string

	cmd := &cobra.Command{
		Use:   "create-clinic",
		Short: "Register a clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newClinicService()
			if err != nil {
				return err
			}
			defer db.Close()

			req := &model.CreateClinicRequest{Name: name}
			if address != "" {
				req.Address = &address
			}
			if contact != "" {
				req.ContactNumber = &contact
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			clinic, err := svc.CreateClinic(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("clinic created: %s\n", clinic.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "clinic name")
	cmd.Flags().StringVar(&address, "address", "", "clinic address")
	cmd.Flags().StringVar(&contact, "contact", "", "contact number")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newCreateStaffCommand() *cobra.Command {
	var username, emailAddr, password, clinicID, employeeID, title, license string

	cmd := &cobra.Command{
		Use:   "create-staff",
		Short: "Provision a clinic personnel account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newClinicService()
			if err != nil {
				return err
			}
			defer db.Close()

			req := &model.CreateStaffRequest{
				Username:   username,
				Email:      emailAddr,
				Password:   password,
				ClinicID:   clinicID,
				EmployeeID: employeeID,
				Title:      title,
			}
			if license != "" {
				req.LicenseNumber = &license
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			personnel, err := svc.CreateStaff(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("staff account created: %s\n", personnel.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&emailAddr, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&clinicID, "clinic", "", "clinic id")
	cmd.Flags().StringVar(&employeeID, "employee-id", "", "unique employee id")
	cmd.Flags().StringVar(&title, "title", model.TitleNurse, "Doctor or Nurse")
	cmd.Flags().StringVar(&license, "license", "", "license number")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("clinic")
	cmd.MarkFlagRequired("employee-id")
	return cmd
}

func newCreateAdminCommand() *cobra.Command {
	var username, emailAddr, password, employeeID string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision a system admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := newClinicService()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			admin, err := svc.CreateAdmin(ctx, &model.CreateAdminRequest{
				Username:   username,
				Email:      emailAddr,
				Password:   password,
				EmployeeID: employeeID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("admin account created: %s\n", admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&emailAddr, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&employeeID, "employee-id", "", "unique employee id")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("employee-id")
	return cmd
}

func newClinicService() (*clinicService.Service, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	appLogger := logger.New(&logger.Config{Level: logger.WarnLevel, TimeFormat: time.RFC3339})
	svc := clinicService.NewService(
		postgres.NewClinicRepository(db),
		postgres.NewPersonnelRepository(db),
		postgres.NewAdminRepository(db),
		postgres.NewUserRepository(db),
		security.NewBcryptHasher(12),
		*appLogger.Zerolog(),
	)
	return svc, db, nil
}
