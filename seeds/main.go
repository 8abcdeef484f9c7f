// Command seeds loads the sample decoration catalog and, optionally, an admin account.
package main

import (
	"context"
	"flag"
	"time"

	"styledecor/config"
	"styledecor/database"
	serviceRepo "styledecor/database/repository/service"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const seedCreator = "admin@styledecor.com"

var sampleServices = []models.Service{
	{Name: "Premium Wedding Decoration", Cost: 50000, Unit: "event", Category: "wedding",
		Description: "Complete wedding decoration package including stage setup, lighting, floral arrangements, and entrance decoration.",
		Image:       "https://images.unsplash.com/photo-1519225421980-715cb0215aed?w=800"},
	{Name: "Birthday Party Decoration", Cost: 5000, Unit: "event", Category: "birthday",
		Description: "Colorful birthday decoration with balloons, banners, themed props and a personalized cake table.",
		Image:       "https://images.unsplash.com/photo-1530103862676-de8c9debad1d?w=800"},
	{Name: "Corporate Event Setup", Cost: 35000, Unit: "event", Category: "corporate",
		Description: "Corporate event decoration including branding, stage setup, presentation area and networking zones.",
		Image:       "https://images.unsplash.com/photo-1511578314322-379afb476865?w=800"},
	{Name: "Smart Home Interior Design", Cost: 150000, Unit: "project", Category: "home",
		Description: "Smart home interior design with automated lighting, climate control and modern furnishing.",
		Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800"},
	{Name: "Office Interior Decoration", Cost: 75000, Unit: "project", Category: "office",
		Description: "Office interior design with ergonomic furniture, collaborative spaces and focus areas.",
		Image:       "https://images.unsplash.com/photo-1497366811353-6870744d04b2?w=800"},
	{Name: "Seminar Hall Setup", Cost: 15000, Unit: "event", Category: "seminar",
		Description: "Seminar and conference hall setup with audio-visual equipment, seating arrangements and stage decoration.",
		Image:       "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800"},
	{Name: "Living Room Makeover", Cost: 40000, Unit: "room", Category: "home",
		Description: "Living room refresh with curated furniture, wall art, lighting and soft furnishings.",
		Image:       "https://images.unsplash.com/photo-1618221195710-dd6b41faaea6?w=800"},
	{Name: "Engagement Ceremony Decor", Cost: 25000, Unit: "event", Category: "wedding",
		Description: "Engagement decoration with floral backdrop, ring ceremony stage and guest seating styling.",
		Image:       "https://images.unsplash.com/photo-1465495976277-4387d4b0b4c6?w=800"},
	{Name: "Product Launch Event", Cost: 45000, Unit: "event", Category: "corporate",
		Description: "Product launch setup with branding displays, interactive zones and media-ready presentation areas.",
		Image:       "https://images.unsplash.com/photo-1505373877841-8d25f7d46678?w=800"},
}

func main() {
	reset := flag.Bool("reset", true, "delete existing services before seeding")
	adminEmail := flag.String("admin-email", "", "also create an admin account with this email")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin account")
	flag.Parse()

	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal("seeds: failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(config.AppConfig.DatabaseName)

	if *reset {
		res, err := db.Collection(database.ServicesCollection).DeleteMany(ctx, bson.M{})
		if err != nil {
			logger.Fatal("seeds: failed to clear services", zap.Error(err))
		}
		logger.Info("Cleared existing services", zap.Int64("deleted", res.DeletedCount))
	}

	services := serviceRepo.NewMongoServiceRepo(db)
	for i := range sampleServices {
		svc := sampleServices[i]
		svc.CreatedByEmail = seedCreator
		if err := services.Create(ctx, &svc); err != nil {
			logger.Fatal("seeds: failed to insert service", zap.String("name", svc.Name), zap.Error(err))
		}
		logger.Info("Inserted service",
			zap.String("name", svc.Name), zap.Float64("cost", svc.Cost), zap.String("category", svc.Category))
	}

	if *adminEmail != "" {
		seedAdmin(ctx, userRepo.NewMongoUserRepo(db), *adminEmail, *adminPassword, logger)
	}
	logger.Info("Seeding complete", zap.Int("services", len(sampleServices)))
}

func seedAdmin(ctx context.Context, repo userRepo.UserRepository, email, password string, logger *zap.Logger) {
	email = models.NormalizeEmail(email)
	if len(password) < 6 {
		logger.Fatal("seeds: admin password must be at least 6 characters")
	}
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Fatal("seeds: failed to look up admin", zap.Error(err))
	}
	if existing != nil {
		existing.SetRole(models.RoleAdmin)
		if err := repo.Update(ctx, existing); err != nil {
			logger.Fatal("seeds: failed to promote admin", zap.Error(err))
		}
		logger.Info("Promoted existing account to admin", zap.String("email", email))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("seeds: failed to hash admin password", zap.Error(err))
	}
	admin := &models.User{
		Account: models.Account{
			Name:     "Admin",
			Email:    email,
			Role:     models.RoleAdmin,
			IsActive: true,
		},
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, admin); err != nil {
		logger.Fatal("seeds: failed to create admin", zap.Error(err))
	}
	logger.Info("Created admin account", zap.String("email", email))
}
