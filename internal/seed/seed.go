package seed

import (
	"fmt"
	"log"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with demo data: users, posts spread over the
// recent past, a follow mesh, likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	follows, err := createFollowMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	likes, comments, err := createEngagement(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a predictable user so local sessions have somewhere to land.
	if count >= 1 {
		user, err := f.CreateUser(func(u *models.User) {
			u.AuthID = "seed|demo"
			u.DisplayName = "Demo User"
		})
		if err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

// createFollowMesh gives every user a handful of people to follow.
func createFollowMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		targets := f.rand.Intn(len(users)/2 + 1)
		seen := map[string]struct{}{follower.ID: {}}
		for t := 0; t < targets; t++ {
			following := users[f.rand.Intn(len(users))]
			if _, dup := seen[following.ID]; dup {
				continue
			}
			seen[following.ID] = struct{}{}
			if err := f.CreateFollow(follower, following); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// createEngagement sprinkles likes and comments across posts.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) (int, int, error) {
	likes, comments := 0, 0
	for _, post := range posts {
		likers := f.rand.Intn(len(users) + 1)
		seen := map[string]struct{}{}
		for l := 0; l < likers; l++ {
			user := users[f.rand.Intn(len(users))]
			if _, dup := seen[user.ID]; dup {
				continue
			}
			seen[user.ID] = struct{}{}
			if err := f.CreateLike(user, post); err != nil {
				return likes, comments, err
			}
			likes++
		}

		for c := 0; c < f.rand.Intn(5); c++ {
			user := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(user, post); err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}
