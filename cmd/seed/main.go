// Command seed loads a starter menu, an admin user, and default
// settings into the storefront database. Safe to run more than once:
// existing rows are left alone.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ovenline/pizza-storefront/internal/catalog"
	catalogsqlite "github.com/ovenline/pizza-storefront/internal/catalog/sqlite"
	"github.com/ovenline/pizza-storefront/internal/pkg/config"
	"github.com/ovenline/pizza-storefront/internal/pkg/sqlitedb"
	"github.com/ovenline/pizza-storefront/internal/pkg/telemetry"
	"github.com/ovenline/pizza-storefront/internal/settings"
	settingssqlite "github.com/ovenline/pizza-storefront/internal/settings/sqlite"
	"github.com/ovenline/pizza-storefront/internal/user"
	usersqlite "github.com/ovenline/pizza-storefront/internal/user/sqlite"
)

func main() {
	telemetry.InitLogger()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlitedb.Open(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pizzas, err := catalogsqlite.New(db)
	if err != nil {
		slog.Error("failed to initialise catalog", "error", err)
		os.Exit(1)
	}
	users, err := usersqlite.New(db)
	if err != nil {
		slog.Error("failed to initialise users", "error", err)
		os.Exit(1)
	}
	store, err := settingssqlite.New(db)
	if err != nil {
		slog.Error("failed to initialise settings", "error", err)
		os.Exit(1)
	}

	seedPizzas(ctx, pizzas)
	seedAdmin(ctx, users)
	seedSettings(ctx, store)

	slog.Info("seed complete", "path", cfg.SQLitePath)
}

func seedPizzas(ctx context.Context, repo *catalogsqlite.Repository) {
	now := time.Now().UTC()
	menu := []catalog.Pizza{
		{
			Name:        "Margherita",
			Description: "Tomato, mozzarella, fresh basil",
			Category:    "classic",
			Sizes: []catalog.SizePrice{
				{Name: "S", Diameter: "25 cm", Price: 450},
				{Name: "M", Diameter: "30 cm", Price: 650},
				{Name: "L", Diameter: "35 cm", Price: 850},
			},
		},
		{
			Name:        "Pepperoni",
			Description: "Double pepperoni, mozzarella",
			Category:    "classic",
			Sizes: []catalog.SizePrice{
				{Name: "S", Diameter: "25 cm", Price: 550},
				{Name: "M", Diameter: "30 cm", Price: 750},
				{Name: "L", Diameter: "35 cm", Price: 950},
			},
		},
		{
			Name:        "Quattro Formaggi",
			Description: "Mozzarella, gorgonzola, parmesan, emmental",
			Category:    "specialty",
			Sizes: []catalog.SizePrice{
				{Name: "M", Diameter: "30 cm", Price: 820},
				{Name: "L", Diameter: "35 cm", Price: 1020},
			},
		},
		{
			Name:        "Veggie Garden",
			Description: "Peppers, mushrooms, olives, red onion",
			Category:    "vegetarian",
			Sizes: []catalog.SizePrice{
				{Name: "S", Diameter: "25 cm", Price: 500},
				{Name: "M", Diameter: "30 cm", Price: 700},
				{Name: "L", Diameter: "35 cm", Price: 900},
			},
		},
	}

	for _, p := range menu {
		p.ID = uuid.NewString()
		p.Available = true
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repo.Create(ctx, p); err != nil {
			slog.Warn("skipping pizza", "name", p.Name, "error", err)
		}
	}
}

func seedAdmin(ctx context.Context, repo *usersqlite.Repository) {
	now := time.Now().UTC()
	admin := user.User{
		ID:        uuid.NewString(),
		Name:      "Store Admin",
		Email:     "admin@ovenline.example",
		Role:      user.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The email column is UNIQUE, so reruns fail here and are skipped.
	if err := repo.Create(ctx, admin); err != nil {
		slog.Warn("skipping admin user", "error", err)
	}
}

func seedSettings(ctx context.Context, repo *settingssqlite.Repository) {
	defaults := []settings.Setting{
		{Key: "store_name", Value: "Ovenline Pizza"},
		{Key: "open_hours", Value: "11:00-23:00"},
		{Key: "free_delivery_banner", Value: "Free delivery on orders over 800!"},
	}
	for _, s := range defaults {
		if _, err := repo.Get(ctx, s.Key); err == nil {
			continue
		} else if !errors.Is(err, settings.ErrNotFound) {
			slog.Warn("skipping setting", "key", s.Key, "error", err)
			continue
		}
		if err := repo.Set(ctx, s); err != nil {
			slog.Warn("skipping setting", "key", s.Key, "error", err)
		}
	}
}
