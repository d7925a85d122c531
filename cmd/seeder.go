package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
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

		if clearData {
			for _, table := range []string{"action_plans", "inspection_items", "inspections", "checklist_items", "checklist_templates", "users", "organizations"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		// Master org with one subsidiary under it
		masterID := seedOrg(db, "Acme Holdings", "master", nil, "enterprise", 100, 10)
		subsidiaryID := seedOrg(db, "Acme Manufacturing", "subsidiary", &masterID, "pro", 25, 0)

		seedUser(db, "admin@acme.test", "System Admin", "system_admin", masterID, string(hash))
		seedUser(db, "orgadmin@acme.test", "Org Admin", "org_admin", masterID, string(hash))
		seedUser(db, "inspector@acme.test", "Site Inspector", "inspector", subsidiaryID, string(hash))
		seedUser(db, "manager@acme.test", "Site Manager", "manager", subsidiaryID, string(hash))
		seedUser(db, "client@acme.test", "Client Viewer", "client", subsidiaryID, string(hash))

		seedTemplate(db, subsidiaryID)

		fmt.Println("Seeding complete; all seeded accounts use password:", password)
	},
}

func seedOrg(db *sqlx.DB, name, orgType string, parentID *string, plan string, maxUsers, maxSubsidiaries int) string {
	var id string
	err := db.QueryRow("SELECT id FROM organizations WHERE name = $1", name).Scan(&id)
	if err == nil {
		fmt.Printf("organization %q already exists\n", name)
		return id
	}

	id = uuid.NewString()
	_, err = db.Exec(`INSERT INTO organizations (id, name, org_type, parent_id, plan, max_users, max_subsidiaries, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, now(), now())`,
		id, name, orgType, parentID, plan, maxUsers, maxSubsidiaries)
	if err != nil {
		log.Fatalf("failed to seed organization %q: %v", name, err)
	}
	fmt.Printf("Seeded organization: %s (%s)\n", name, id)
	return id
}

func seedUser(db *sqlx.DB, email, name, role, orgID, passwordHash string) {
	var exists int
	if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", email).Scan(&exists); err == nil {
		fmt.Printf("user %s already exists\n", email)
		return
	}

	_, err := db.Exec(`INSERT INTO users (email, name, password_hash, role, org_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, now(), now())`,
		email, name, passwordHash, role, orgID)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}

func seedTemplate(db *sqlx.DB, orgID string) {
	name := "Monthly Fire Safety Walkthrough"

	var exists int
	if err := db.QueryRow("SELECT 1 FROM checklist_templates WHERE org_id = $1 AND name = $2", orgID, name).Scan(&exists); err == nil {
		fmt.Printf("template %q already exists\n", name)
		return
	}

	var templateID int64
	err := db.QueryRow(`INSERT INTO checklist_templates (org_id, name, category, is_active, created_at, updated_at)
		VALUES ($1, $2, 'fire_safety', true, now(), now()) RETURNING id`, orgID, name).Scan(&templateID)
	if err != nil {
		log.Fatalf("failed to seed template: %v", err)
	}

	items := []struct {
		Text   string
		Weight int
	}{
		{"Fire extinguishers present and charged", 3},
		{"Emergency exits unobstructed", 3},
		{"Exit signage illuminated", 2},
		{"Evacuation plan posted on every floor", 1},
		{"Smoke detectors tested within 30 days", 2},
	}
	for i, item := range items {
		_, err := db.Exec(`INSERT INTO checklist_items (template_id, text, category, weight, position)
			VALUES ($1, $2, 'fire_safety', $3, $4)`, templateID, item.Text, item.Weight, i)
		if err != nil {
			log.Fatalf("failed to seed checklist item: %v", err)
		}
	}
	fmt.Printf("Seeded template %q with %d items\n", name, len(items))
}
