package server

import (
	"testing"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server over an in-memory SQLite database and a Fiber
// app with the full route table. Metrics and global middleware are left out;
// route-level auth still runs.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret-for-handler-tests-32ch",
		Port:      "0",
		Env:       "test",
		PageSize:  10,
		LoginURL:  "/api/auth/login",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
	s.postService = service.NewPostService(postRepo, categoryRepo, locationRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.userService = service.NewUserService(userRepo, postRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func createUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsAdmin:  admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "a post",
		Text:        "some text",
		PubDate:     time.Now().UTC().Add(-time.Hour),
		IsPublished: true,
		AuthorID:    authorID,
	}
	for _, m := range mutate {
		m(post)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// bearerFor mints a valid token for the given user.
func bearerFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}
