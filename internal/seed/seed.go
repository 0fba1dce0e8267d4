package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
	postDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/post"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/object"
	"github.com/sce-foundation/sce-portal/internal/position"
	"github.com/sce-foundation/sce-portal/internal/post"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type userRepository interface {
	Count() (int64, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
}

// Seeder populates empty collections with the demo dataset. Each collection
// is seeded independently and only when empty, so running it repeatedly, or
// against a partially populated store, changes nothing that already exists.
type Seeder struct {
	users     userRepository
	objects   object.RepositoryAPI
	posts     post.RepositoryAPI
	positions position.RepositoryAPI
	logger    *slog.Logger

	bootstrapEmail string
}

func NewSeeder(users userRepository, objects object.RepositoryAPI, posts post.RepositoryAPI, positions position.RepositoryAPI, logger *slog.Logger, bootstrapEmail string) *Seeder {
	return &Seeder{
		users:          users,
		objects:        objects,
		posts:          posts,
		positions:      positions,
		logger:         logger,
		bootstrapEmail: bootstrapEmail,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	adminID, err := s.seedUsers()
	if err != nil {
		return err
	}
	if err := s.seedObjects(adminID); err != nil {
		return err
	}
	if err := s.seedPosts(adminID); err != nil {
		return err
	}
	return s.seedPositions()
}

// seedUsers creates the bootstrap administrator when no accounts exist, and
// returns its id for use as the demo records' creator reference. With
// accounts already present, the existing bootstrap account (when one exists)
// is used for attribution instead.
func (s *Seeder) seedUsers() (string, error) {
	count, err := s.users.Count()
	if err != nil {
		return "", err
	}
	if count > 0 {
		s.logger.Debug("users already present, skipping seed")
		existing, err := s.users.GetByEmail(s.bootstrapEmail)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", nil
		}
		return existing.ID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("change-me"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	admin := &userDatamodel.User{
		ID:             uuid.NewString(),
		Email:          s.bootstrapEmail,
		Username:       "administrator",
		PasswordHash:   string(hash),
		Role:           string(user.RoleAdministrator),
		Status:         string(user.StatusActive),
		ClearanceLevel: user.MaxClearance,
		CreatedAt:      time.Now(),
	}
	if err := s.users.Create(admin); err != nil {
		return "", err
	}

	s.logger.Info("seeded bootstrap administrator", "email", admin.Email)
	return admin.ID, nil
}

func (s *Seeder) seedObjects(createdBy string) error {
	existing, err := s.objects.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Debug("objects already present, skipping seed")
		return nil
	}

	now := time.Now()
	demo := []*objectDatamodel.AnomalousObject{
		{
			ID:             uuid.NewString(),
			Code:           "SCE-001",
			Name:           "The Shifting Staircase",
			Classification: string(object.ClassSafe),
			ContainmentProcedures: "Object is to be kept in a sealed stairwell at Site-7. " +
				"Access requires level 1 clearance and a standard two-person escort.",
			Description: "A spiral staircase whose step count differs on every " +
				"traversal. No traversal has ever reported the same count twice.",
			CreatedBy:         createdBy,
			RequiredClearance: 1,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:             uuid.NewString(),
			Code:           "SCE-002",
			Name:           "Whispering Mirror",
			Classification: string(object.ClassKeter),
			ContainmentProcedures: "Object is to be stored face-down in an opaque, " +
				"sound-proofed container. Direct observation is prohibited without " +
				"level 4 clearance and written site-director approval.",
			Description: "An antique mirror that reflects rooms other than the one " +
				"it occupies. Personnel report hearing their own voice from the glass.",
			CreatedBy:         createdBy,
			RequiredClearance: 4,
			CreatedAt:         now.Add(time.Millisecond),
			UpdatedAt:         now.Add(time.Millisecond),
		},
	}

	for _, o := range demo {
		if err := s.objects.Create(o); err != nil {
			return err
		}
	}
	s.logger.Info("seeded anomalous objects", "count", len(demo))
	return nil
}

func (s *Seeder) seedPosts(authorID string) error {
	existing, err := s.posts.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Debug("posts already present, skipping seed")
		return nil
	}

	now := time.Now()
	demo := []*postDatamodel.Post{
		{
			ID:                uuid.NewString(),
			Title:             "Welcome to the SCE Foundation Archive",
			Content:           "The archive portal is now open to cleared personnel. Report access anomalies to your site administrator.",
			AuthorID:          authorID,
			AuthorName:        "administrator",
			Category:          string(post.CategoryAnnouncement),
			RequiredClearance: 1,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                uuid.NewString(),
			Title:             "Quarterly Containment Review",
			Content:           "Summary of containment performance across all sites for the past quarter. Two breaches, both resolved without casualties.",
			AuthorID:          authorID,
			AuthorName:        "administrator",
			Category:          string(post.CategoryReport),
			RequiredClearance: 2,
			CreatedAt:         now.Add(time.Millisecond),
			UpdatedAt:         now.Add(time.Millisecond),
		},
		{
			ID:                uuid.NewString(),
			Title:             "Preliminary Findings: SCE-002 Acoustic Study",
			Content:           "Spectral analysis of SCE-002 emissions shows structured patterns inconsistent with ambient reflection. Further study approved.",
			AuthorID:          authorID,
			AuthorName:        "administrator",
			Category:          string(post.CategoryResearch),
			RequiredClearance: 3,
			CreatedAt:         now.Add(2 * time.Millisecond),
			UpdatedAt:         now.Add(2 * time.Millisecond),
		},
	}

	for _, p := range demo {
		if err := s.posts.Create(p); err != nil {
			return err
		}
	}
	s.logger.Info("seeded posts", "count", len(demo))
	return nil
}

func (s *Seeder) seedPositions() error {
	existing, err := s.positions.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Debug("positions already present, skipping seed")
		return nil
	}

	now := time.Now()
	demo := []*position.Position{
		{
			ID:             uuid.NewString(),
			Name:           "Site Director",
			Description:    "Oversees all site operations and containment policy.",
			ClearanceLevel: 5,
			Permissions:    []string{"manage_users", "manage_objects", "manage_posts", "manage_positions"},
			CreatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			Name:           "Senior Researcher",
			Description:    "Leads research programs on assigned anomalies.",
			ClearanceLevel: 4,
			Permissions:    []string{"publish_research", "view_objects"},
			CreatedAt:      now.Add(time.Millisecond),
		},
		{
			ID:             uuid.NewString(),
			Name:           "Field Agent",
			Description:    "Recovers and escorts anomalous objects in the field.",
			ClearanceLevel: 2,
			Permissions:    []string{"file_reports"},
			CreatedAt:      now.Add(2 * time.Millisecond),
		},
		{
			ID:             uuid.NewString(),
			Name:           "Junior Archivist",
			Description:    "Maintains archive records under supervision.",
			ClearanceLevel: 1,
			Permissions:    []string{"view_archive"},
			CreatedAt:      now.Add(3 * time.Millisecond),
		},
	}

	for _, p := range demo {
		if err := s.positions.Create(position.ToDataModel(p)); err != nil {
			return err
		}
	}
	s.logger.Info("seeded positions", "count", len(demo))
	return nil
}
