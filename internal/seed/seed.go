// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"snapgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testPassword is shared by every seeded account.
const testPassword = "password123"

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"messages", "conversations", "likes", "comments", "follows", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database according to the profile.
func (s *Seeder) Run(p Profile) error {
	log.Printf("Seeding %d users, %d posts...", p.Users, p.Posts)

	users, err := s.seedUsers(p.Users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := s.seedFollows(users, p.FollowRatio); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}

	posts, err := s.seedPosts(users, p.Posts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.seedEngagement(users, posts, p.LikeRatio, p.CommentsPerPost); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}

	if err := s.seedConversations(users, p.Conversations, p.MessagesPerConversation); err != nil {
		return fmt.Errorf("seed conversations: %w", err)
	}

	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: string(hash),
			Bio:      gofakeit.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(u).Error; err != nil {
			// Random usernames can collide; skip and move on.
			continue
		}
		users = append(users, u)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users created")
	}
	return users, nil
}

// seedFollows wires a follow edge between each ordered user pair with the
// given probability.
func (s *Seeder) seedFollows(users []*models.User, ratio float64) error {
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || s.rand.Float64() > ratio {
				continue
			}
			follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			if err := s.db.Create(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := s.buildPost(author)
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// buildPost constructs an unpersisted post with a creation time spread
// over the last 90 days.
func (s *Seeder) buildPost(author *models.User) *models.Post {
	post := &models.Post{
		Caption:  gofakeit.Sentence(8),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Rating:   gofakeit.Number(1, 5),
		UserID:   author.ID,
	}
	daysBack := s.rand.Intn(90)
	hoursBack := s.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	return post
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post, likeRatio float64, commentsPerPost int) error {
	for _, post := range posts {
		for _, user := range users {
			if s.rand.Float64() > likeRatio {
				continue
			}
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
		}

		n := s.rand.Intn(commentsPerPost + 1)
		for i := 0; i < n; i++ {
			commenter := users[s.rand.Intn(len(users))]
			comment := &models.Comment{
				Content: gofakeit.Sentence(6),
				UserID:  commenter.ID,
				PostID:  post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// seedConversations pairs random users and fills each conversation with an
// alternating back-and-forth.
func (s *Seeder) seedConversations(users []*models.User, n, messagesPer int) error {
	if len(users) < 2 {
		return nil
	}
	for i := 0; i < n; i++ {
		a := users[s.rand.Intn(len(users))]
		b := users[s.rand.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}

		conv := &models.Conversation{ParticipantAID: a.ID, ParticipantBID: b.ID}
		if err := s.db.Create(conv).Error; err != nil {
			// Pair already has a conversation; reuse it.
			if findErr := s.db.Where(
				"participant_a_id = ? AND participant_b_id = ?",
				min(a.ID, b.ID), max(a.ID, b.ID),
			).First(conv).Error; findErr != nil {
				return findErr
			}
		}

		at := time.Now().Add(-time.Duration(s.rand.Intn(72)) * time.Hour)
		for j := 0; j < messagesPer; j++ {
			sender, receiver := a, b
			if j%2 == 1 {
				sender, receiver = b, a
			}
			msg := &models.Message{
				ConversationID: conv.ID,
				SenderID:       sender.ID,
				ReceiverID:     receiver.ID,
				Content:        gofakeit.Sentence(5),
				CreatedAt:      at,
			}
			if err := s.db.Create(msg).Error; err != nil {
				return err
			}
			at = at.Add(time.Duration(s.rand.Intn(300)+1) * time.Second)
		}
	}
	return nil
}
