package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/sya-pos/possyncgo/internal/config"
	"github.com/sya-pos/possyncgo/internal/database"
	"github.com/sya-pos/possyncgo/internal/models"
	"github.com/sya-pos/possyncgo/internal/utils"
)

func main() {
	fmt.Println("🌱 POS Sync Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Branch{},
		&models.Employee{},
		&models.Customer{},
		&models.Shift{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Expense{},
		&models.CashMovement{},
		&models.ScaleTamperLog{},
		&models.ScaleDisconnectionLog{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var tenantCount int64
	db.Model(&models.Tenant{}).Count(&tenantCount)
	if tenantCount > 0 {
		fmt.Printf("⚠️  Database already has %d tenants. Clear it first? (y/N): ", tenantCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE sale_items CASCADE")
		db.Exec("TRUNCATE TABLE sales CASCADE")
		db.Exec("TRUNCATE TABLE expenses CASCADE")
		db.Exec("TRUNCATE TABLE cash_movements CASCADE")
		db.Exec("TRUNCATE TABLE scale_tamper_logs CASCADE")
		db.Exec("TRUNCATE TABLE scale_disconnection_logs CASCADE")
		db.Exec("TRUNCATE TABLE shifts CASCADE")
		db.Exec("TRUNCATE TABLE customers CASCADE")
		db.Exec("TRUNCATE TABLE employees CASCADE")
		db.Exec("TRUNCATE TABLE branches CASCADE")
		db.Exec("TRUNCATE TABLE tenants CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Create Tenant
	fmt.Println("🏢 Creating tenant...")
	tenant := models.Tenant{
		ID:           1,
		BusinessName: "Carnicería La Esperanza",
		TenantCode:   "ESPERANZA",
		IsActive:     true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		log.Fatalf("❌ Failed to create tenant: %v", err)
	}
	fmt.Printf("   ✓ Created tenant: %s\n\n", tenant.BusinessName)

	// 2. Create Branches
	fmt.Println("📍 Creating branches...")
	branches := []models.Branch{
		{ID: 1, TenantID: 1, BranchCode: "CENTRO", Name: "Sucursal Centro", Address: "Av. Juárez 123, Centro", IsActive: true},
		{ID: 2, TenantID: 1, BranchCode: "NORTE", Name: "Sucursal Norte", Address: "Blvd. Industrial 456, Col. Norte", IsActive: true},
	}
	for _, b := range branches {
		if err := db.Create(&b).Error; err != nil {
			log.Printf("⚠️  Failed to create branch %s: %v", b.Name, err)
		} else {
			fmt.Printf("   ✓ Created branch: %s [%s]\n", b.Name, b.BranchCode)
		}
	}
	fmt.Printf("✅ Created %d branches\n\n", len(branches))

	// 3. Create Employees
	fmt.Println("👤 Creating employees...")
	password, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	branchCentro := uint(1)
	branchNorte := uint(2)
	employees := []models.Employee{
		{TenantID: 1, GlobalID: uuid.NewString(), Username: "mgarcia", FirstName: "María", LastName: "García", Role: "manager", MainBranchID: &branchCentro, Password: password, IsActive: true},
		{TenantID: 1, GlobalID: uuid.NewString(), Username: "jlopez", FirstName: "Juan", LastName: "López", Role: "cashier", MainBranchID: &branchCentro, Password: password, IsActive: true},
		{TenantID: 1, GlobalID: uuid.NewString(), Username: "arodriguez", FirstName: "Ana", LastName: "Rodríguez", Role: "cashier", MainBranchID: &branchNorte, Password: password, IsActive: true},
	}
	for _, e := range employees {
		if err := db.Create(&e).Error; err != nil {
			log.Printf("⚠️  Failed to create employee %s: %v", e.Username, err)
		} else {
			fmt.Printf("   ✓ Created employee: %s (%s) global_id=%s\n", e.DisplayName(), e.Role, e.GlobalID)
		}
	}
	fmt.Printf("✅ Created %d employees\n\n", len(employees))

	// 4. Create Customers
	fmt.Println("🧾 Creating customers...")
	customers := []models.Customer{
		{TenantID: 1, GlobalID: uuid.NewString(), Name: "Restaurante El Portal", Phone: "555-0101", IsActive: true},
		{TenantID: 1, GlobalID: uuid.NewString(), Name: "Taquería Los Compadres", Phone: "555-0102", IsActive: true},
	}
	for _, c := range customers {
		if err := db.Create(&c).Error; err != nil {
			log.Printf("⚠️  Failed to create customer %s: %v", c.Name, err)
		} else {
			fmt.Printf("   ✓ Created customer: %s global_id=%s\n", c.Name, c.GlobalID)
		}
	}
	fmt.Printf("✅ Created %d customers\n\n", len(customers))

	// 5. Issue a device token when a secret is configured
	if cfg.JWTSecret != "" {
		terminalID := uuid.NewString()
		token, err := utils.GenerateDeviceToken(terminalID, tenant.ID, cfg.JWTSecret)
		if err != nil {
			log.Printf("⚠️  Failed to generate device token: %v", err)
		} else {
			fmt.Println("🔑 Demo terminal credentials:")
			fmt.Printf("   terminal_id: %s\n", terminalID)
			fmt.Printf("   token:       %s\n\n", token)
		}
	}

	// Summary
	fmt.Println("=" + string(make([]rune, 60)))
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("   • 1 tenant (%s)\n", tenant.BusinessName)
	fmt.Printf("   • %d branches\n", len(branches))
	fmt.Printf("   • %d employees (password: demo1234)\n", len(employees))
	fmt.Printf("   • %d customers\n", len(customers))
	fmt.Println()
	fmt.Println("🌐 Start the server:")
	fmt.Println("   go run ./cmd/api/main.go")
	fmt.Printf("   Then visit: http://localhost:%s/health\n", cfg.Port)
	fmt.Println("=" + string(make([]rune, 60)))
}
