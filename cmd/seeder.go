package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/capacity-tracker/internal/auth"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	assignmentDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/assignment"
	projectDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/capacity-tracker/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a manager, two engineers, one project and two assignments for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := openGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if err := seed(cmd.Context(), gdb, auth.NewBcryptHasher(cfg.Security.BCryptCost), clearData); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("Seeding complete")
	},
}

const seedPassword = "password"

func seed(ctx context.Context, db *gorm.DB, hasher auth.PasswordHasher, clear bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db = db.WithContext(ctx)

	if clear {
		for _, model := range []any{&assignmentDatamodel.Assignment{}, &projectDatamodel.Project{}, &userDatamodel.User{}} {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		fmt.Println("Cleared existing data")
	}

	var existing int64
	if err := db.Model(&userDatamodel.User{}).Where("email = ?", "manager@example.com").Count(&existing).Error; err != nil {
		return fmt.Errorf("check existing seed: %w", err)
	}
	if existing > 0 {
		fmt.Println("seed data already present; run with --clear to reseed")
		return nil
	}

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	manager := &userDatamodel.User{
		Name: "Project Manager", Email: "manager@example.com", PasswordHash: hash,
		Role: catalog.RoleManager, Skills: []string{}, Department: "Fullstack",
	}
	alice := &userDatamodel.User{
		Name: "Alice Engineer", Email: "alice@example.com", PasswordHash: hash,
		Role: catalog.RoleEngineer, Skills: []string{"React", "Node.js"},
		Seniority: catalog.SeniorityMid, MaxCapacity: 100, Department: "Frontend",
	}
	bob := &userDatamodel.User{
		Name: "Bob Engineer", Email: "bob@example.com", PasswordHash: hash,
		Role: catalog.RoleEngineer, Skills: []string{"MongoDB", "Express"},
		Seniority: catalog.SenioritySenior, MaxCapacity: 100, Department: "Backend",
	}

	const day = 24 * time.Hour
	now := time.Now().UTC()

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []*userDatamodel.User{manager, alice, bob} {
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("insert user %s: %w", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		dashboard := &projectDatamodel.Project{
			Name:           "Internal Dashboard",
			Description:    "Build internal engineering dashboard",
			StartDate:      now,
			EndDate:        now.Add(30 * day),
			RequiredSkills: []string{"React", "Node.js"},
			TeamSize:       2,
			Status:         catalog.StatusActive,
			ManagerID:      manager.ID,
		}
		if err := tx.Create(dashboard).Error; err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		fmt.Println("Seeded project:", dashboard.Name)

		assignments := []*assignmentDatamodel.Assignment{
			{EngineerID: alice.ID, ProjectID: dashboard.ID, AllocationPercentage: 50, StartDate: now, EndDate: now.Add(15 * day), Role: "Frontend Developer"},
			{EngineerID: bob.ID, ProjectID: dashboard.ID, AllocationPercentage: 75, StartDate: now, EndDate: now.Add(20 * day), Role: "Backend Developer"},
		}
		for _, a := range assignments {
			if err := tx.Create(a).Error; err != nil {
				return fmt.Errorf("insert assignment: %w", err)
			}
		}
		fmt.Printf("Seeded %d assignments\n", len(assignments))
		return nil
	})
}
