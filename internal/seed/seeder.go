package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"go.uber.org/multierr"
)

const (
	samplePassword = "password123"
	sampleLocation = "Sample Farm"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type productStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
}

// Params wires the seeder dependencies.
type Params struct {
	Logger   *logger.Logger
	Users    userStore
	Products productStore
	Clock    func() time.Time
}

// Seeder inserts demo users and products into empty tables.
type Seeder struct {
	logg     *logger.Logger
	users    userStore
	products productStore
	now      func() time.Time
}

func NewSeeder(params Params) (*Seeder, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user store required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product store required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Seeder{
		logg:     params.Logger,
		users:    params.Users,
		products: params.Products,
		now:      clock,
	}, nil
}

// Run seeds each table independently. A failure in one does not skip the other.
func (s *Seeder) Run(ctx context.Context) error {
	var errs []error
	if err := s.seedUsers(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.seedProducts(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.logg.Debug(ctx, "seed.users_skipped")
		return nil
	}

	var errs error
	for _, user := range sampleUsers() {
		if _, err := s.users.Create(ctx, user); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed user %s: %w", user.Email, err))
		}
	}
	if errs == nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(sampleUsers())), "seed.users_created")
	}
	return errs
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		s.logg.Debug(ctx, "seed.products_skipped")
		return nil
	}

	list := sampleProducts(s.now().UTC())
	var errs error
	for _, product := range list {
		if _, err := s.products.Create(ctx, product); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed product %s: %w", product.Name, err))
		}
	}
	if errs == nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(list)), "seed.products_created")
	}
	return errs
}

func sampleUsers() []*models.User {
	return []*models.User{
		{Name: "Farmer John", Email: "farmer@example.com", Password: samplePassword, Role: enums.UserRoleFarmer.String()},
		{Name: "Retailer Bob", Email: "retailer@example.com", Password: samplePassword, Role: enums.UserRoleRetailer.String()},
		{Name: "Consumer Alice", Email: "consumer@example.com", Password: samplePassword, Role: enums.UserRoleConsumer.String()},
		{Name: "Distributor Charlie", Email: "distributor@example.com", Password: samplePassword, Role: enums.UserRoleDistributor.String()},
	}
}

func sampleProducts(now time.Time) []*models.Product {
	day := now.Truncate(24 * time.Hour)
	product := func(name, cropType string, kg float64, grade string, daysAgo int) *models.Product {
		harvest := day.AddDate(0, 0, -daysAgo)
		return &models.Product{
			Name:         name,
			CropType:     cropType,
			Category:     cropType,
			QuantityKg:   &kg,
			QualityGrade: grade,
			HarvestDate:  &harvest,
			Location:     sampleLocation,
			Status:       enums.ProductStatusPending,
		}
	}
	return []*models.Product{
		product("Rice", "Grains", 100, "A", 5),
		product("Wheat", "Grains", 80, "A", 10),
		product("Tomato", "Vegetables", 50, "A", 3),
		product("Potato", "Vegetables", 120, "B", 15),
	}
}
