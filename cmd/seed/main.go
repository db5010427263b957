package main

import (
	"fmt"
	"time"

	"inkwell/internal/model"
	"inkwell/internal/usecase"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		name     string
		password string
	}{
		{"alice@test.com", "Alice Hart", "password123"},
		{"bob@test.com", "Bob Quill", "password123"},
		{"carol@test.com", "Carol Inkpen", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		// Account IDs follow the same email local-part rule the API uses.
		user := &model.UserModel{
			ID:       localPart(userData.email),
			Email:    userData.email,
			Name:     userData.name,
			Password: string(hashedPassword),
			Prefs:    "{}",
		}

		var existing model.UserModel
		result := db.Where("email = ?", user.Email).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Name, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("no users available for seeding posts")
	}

	testPosts := []struct {
		title   string
		content string
	}{
		{"Welcome to Inkwell", "<p>A place to put words in order.</p>"},
		{"On Writing Daily", "<p>Small pages add up.</p>"},
		{"Reading List, Summer Edition", "<p>Five books worth your evenings.</p>"},
		{"Drafts Are Allowed to Be Bad", "<p>That is what drafts are for.</p>"},
	}

	postIDs := make([]string, 0, len(testPosts))

	for i, postData := range testPosts {
		slug := usecase.SanitizeSlug(usecase.SlugFromTitle(postData.title))
		authorID := userIDs[i%len(userIDs)]

		var existing model.PostModel
		if db.Where("id = ?", slug).First(&existing).Error == nil {
			log.Info("Post %s already exists, skipping", slug)
			postIDs = append(postIDs, existing.ID)
			continue
		}

		var author model.UserModel
		if err := db.Where("id = ?", authorID).First(&author).Error; err != nil {
			continue
		}

		post := &model.PostModel{
			ID:         slug,
			Title:      postData.title,
			Slug:       slug,
			Content:    postData.content,
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Status:     "active",
			CreatedAt:  time.Now().Add(-time.Duration(i) * time.Hour),
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post %s: %v", slug, err)
			continue
		}

		log.Info("Created post: %s", post.Title)
		postIDs = append(postIDs, post.ID)
	}

	for i, postID := range postIDs {
		userID := userIDs[(i+1)%len(userIDs)]

		var existing model.LikeModel
		if db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error == nil {
			continue
		}

		like := &model.LikeModel{
			PostID: postID,
			UserID: userID,
			Type:   "up",
		}
		if err := db.Create(like).Error; err != nil {
			log.Error("Failed to create like on %s: %v", postID, err)
			continue
		}

		comment := &model.CommentModel{
			PostID:    postID,
			UserID:    userID,
			Content:   "Looking forward to more of these.",
			CreatedAt: time.Now(),
		}
		var commenter model.UserModel
		if db.Where("id = ?", userID).First(&commenter).Error == nil {
			comment.UserName = commenter.Name
		}
		if err := db.Create(comment).Error; err != nil {
			log.Error("Failed to create comment on %s: %v", postID, err)
		}
	}

	return nil
}

func localPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
