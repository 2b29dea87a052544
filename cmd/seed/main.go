package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobfair/internal/database"
	"jobfair/internal/domain"
	"jobfair/internal/repository"
)

func main() {
	db, err := database.Connect("jobfair.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Wipe in dependency order to avoid foreign key errors.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM companies")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	companies := repository.NewCompanyRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Name:         "Fair Admin",
		Email:        "admin@jobfair.local",
		Tel:          "02-000-0000",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}

	userHash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	demo := &domain.User{
		Name:         "Somchai Jaidee",
		Email:        "somchai@example.com",
		Tel:          "081-111-2222",
		PasswordHash: string(userHash),
		Role:         domain.RoleUser,
	}
	if err := users.Create(ctx, demo); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating companies...")
	seedCompanies := []domain.Company{
		{
			Name:        "Acme Software",
			Description: "Product engineering teams hiring backend interns",
			Image:       "https://drive.example.com/acme.png",
			Location:    "https://maps.example.com/acme",
			Website:     "https://acme.example.com",
			Address:     "88 Sukhumvit Rd",
			District:    "Watthana",
			Province:    "Bangkok",
			PostalCode:  "10110",
			Tel:         "02-111-2222",
			Region:      "Central",
			Salary:      "25000-40000",
		},
		{
			Name:        "Northwind Data",
			Description: "Analytics platform, data engineering roles",
			Image:       "https://drive.example.com/northwind.png",
			Location:    "https://maps.example.com/northwind",
			Website:     "https://northwind.example.com",
			Address:     "9 Nimman Rd",
			District:    "Mueang",
			Province:    "Chiang Mai",
			PostalCode:  "50200",
			Tel:         "053-333-444",
			Region:      "North",
			Salary:      "30000-50000",
		},
		{
			Name:        "Siam Robotics",
			Description: "Industrial automation, firmware and cloud",
			Image:       "https://drive.example.com/siam.png",
			Location:    "https://maps.example.com/siam",
			Website:     "https://siamrobotics.example.com",
			Address:     "12 Rama IX Rd",
			District:    "Huai Khwang",
			Province:    "Bangkok",
			PostalCode:  "10310",
			Tel:         "02-555-6666",
			Region:      "Central",
			Salary:      "35000-60000",
		},
	}

	for i := range seedCompanies {
		if err := companies.Create(ctx, &seedCompanies[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating a sample booking...")
	slot := time.Date(2022, 5, 11, 10, 0, 0, 0, time.UTC)
	if err := bookings.Create(ctx, &domain.Booking{
		UserID:      demo.ID,
		CompanyID:   seedCompanies[0].ID,
		BookingDate: slot,
	}); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Println("  admin: admin@jobfair.local / admin123")
	log.Println("  user:  somchai@example.com / user123")
}
