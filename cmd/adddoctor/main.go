// Command adddoctor seeds a doctor account directly into the database. It is
// an operator tool for bootstrapping a deployment that has no accounts yet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mechalung/config"
	"mechalung/internal/domain/entity"
	"mechalung/internal/infra/auth"
	"mechalung/internal/infra/persistence/model"
	"mechalung/internal/infra/persistence/postgres"

	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	username := flag.String("username", "", "login username for the new doctor")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	migrate := flag.Bool("migrate", false, "run schema auto-migration before inserting")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adddoctor -username <name> -password <password> [-migrate]")
		os.Exit(2)
	}

	if err := run(*username, *password, *migrate); err != nil {
		fmt.Fprintln(os.Stderr, "adddoctor:", err)
		os.Exit(1)
	}
}

func run(username, password string, migrate bool) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if migrate {
		if err := db.AutoMigrate(&model.DoctorModel{}, &model.PatientRecordModel{}); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	hasher := auth.NewBcryptHasher(cfg)
	passwordHash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	doctor := &entity.Doctor{
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	repo := postgres.NewDoctorRepository(db)
	if err := repo.Create(context.Background(), doctor); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	fmt.Printf("created doctor %s (%s)\n", doctor.Username, doctor.ID)

	return nil
}
