package db

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo users,
// swipes, matches, chat messages and balances.
//
// Behavior:
//  1. Clears all tables.
//  2. Creates 20 users (u1..u20) with hashed passwords.
//  3. Generates ~200 likes with ~70% positive, every 3rd reciprocated,
//     and materializes the resulting matches in canonical order.
//  4. Drops a short conversation into each match.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"gifts", "balances", "messages", "matches", "likes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE matches AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE messages AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('matches', 'messages', 'gifts', 'balances')")
	}

	log.Println("Cleared existing data")

	// --- Seed Users ---
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := User{
			ID:           fmt.Sprintf("u%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			FirstName:    fmt.Sprintf("User%d", i),
			LastName:     "Demo",
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	likeUpsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_like", "updated_at"}),
	}

	// --- Seed Likes and Matches ---
	counter := 0
	for i := 1; i <= 20; i++ {
		from := fmt.Sprintf("u%d", i)
		for j := 0; j < 12; j++ {
			to := fmt.Sprintf("u%d", r.Intn(20)+1)
			if from == to {
				continue
			}

			// like probability 70%
			liked := r.Intn(100) < 70

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				liked = true
				recip := Like{FromUserID: to, ToUserID: from, IsLike: true}
				db.Clauses(likeUpsert).Create(&recip)
			}

			like := Like{FromUserID: from, ToUserID: to, IsLike: liked}
			if err := db.Clauses(likeUpsert).Create(&like).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}

			if counter%3 == 0 {
				a, b := from, to
				if strings.Compare(a, b) > 0 {
					a, b = b, a
				}
				match := Match{User1ID: a, User2ID: b}
				db.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
			}

			counter++
		}
	}

	// --- Seed Messages ---
	var matches []Match
	if err := db.Find(&matches).Error; err != nil {
		return err
	}
	openers := []string{"hey!", "hi, how's your week going?", "love your profile", "coffee sometime?"}
	for _, m := range matches {
		msgs := []Message{
			{MatchID: m.ID, SenderID: m.User1ID, Content: openers[r.Intn(len(openers))], MessageType: "text"},
			{MatchID: m.ID, SenderID: m.User2ID, Content: "hey, nice to match!", MessageType: "text"},
		}
		if err := db.Create(&msgs).Error; err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}
	log.Printf("Seeded %d matches with conversations.", len(matches))

	return nil
}
