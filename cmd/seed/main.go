package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/workspace-hub/config"
	"github.com/oksasatya/workspace-hub/internal/domain/entity"
	"github.com/oksasatya/workspace-hub/internal/domain/repository"
	pginfra "github.com/oksasatya/workspace-hub/internal/infrastructure/postgres"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool, cfg.BcryptCost)
	tenancy := pginfra.NewTenancyRepository(pool)

	email := "demo@workspacehub.dev"
	password := "Demo@12345"
	u, err := users.Create(ctx, entity.NewUser{
		Name:            "Demo User",
		Email:           email,
		Password:        password,
		ProfileMetadata: map[string]any{entity.MetaPhone: "11999887766"},
	})
	switch {
	case errors.Is(err, repository.ErrEmailInUse):
		u, err = users.FindByEmail(ctx, email)
		if err != nil {
			log.Fatalf("failed to load existing demo user: %v", err)
		}
		fmt.Printf("demo user already present: id=%s email=%s\n", u.ID, u.Email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, password)

	ws, err := tenancy.CreateWorkspace(ctx, "Demo Workspace", "Seeded workspace", u.ID)
	if err != nil {
		log.Fatalf("failed to seed workspace: %v", err)
	}
	sp, err := tenancy.CreateSpace(ctx, ws.ID, "Product", "", u.ID, false)
	if err != nil {
		log.Fatalf("failed to seed space: %v", err)
	}
	for _, c := range []struct{ name, kind string }{
		{"Backlog", entity.CategoryList},
		{"Sprint 1", entity.CategorySprint},
		{"Notes", entity.CategoryText},
	} {
		cat, err := tenancy.CreateCategory(ctx, sp.ID, c.name, c.kind, u.ID)
		if err != nil {
			log.Fatalf("failed to seed category %s: %v", c.name, err)
		}
		fmt.Printf("seeded category: id=%s name=%s type=%s\n", cat.ID, cat.Name, cat.Type)
	}
	fmt.Printf("seeded workspace=%s space=%s\n", ws.ID, sp.ID)
}
