package swipe

import (
	"context"
	"strings"
	"time"

	"github.com/sparkdate/spark/internal/app"
	"github.com/sparkdate/spark/internal/db"
	svcErr "github.com/sparkdate/spark/internal/errors"
	"github.com/sparkdate/spark/internal/repository"
)

// Service is the match engine: it records swipe decisions and decides
// whether a new like completes a mutual match.
type Service struct {
	appCtx    *app.AppContext
	likeRepo  *repository.LikeRepository
	matchRepo *repository.MatchRepository
}

// NewService creates the swipe service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		likeRepo:  repository.NewLikeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
	}
}

// Result is the swipe outcome: the recorded like, plus the match when
// the like completed a mutual pair.
type Result struct {
	Like  db.Like   `json:"like"`
	Match *db.Match `json:"match"`
}

// CanonicalPair orders two user identifiers into the stable (user1,
// user2) form used for match rows: byte-wise smaller identifier first.
// The same unordered pair always maps to the same row regardless of who
// liked whom first.
func CanonicalPair(a, b string) (string, string) {
	if strings.Compare(a, b) > 0 {
		return b, a
	}
	return a, b
}

// RecordLike upserts the directed like and returns the match if one now
// exists.
//
// Behavior:
//   - Validates both identifiers; swiping on yourself is rejected.
//   - Upserts the like edge (a repeat swipe overwrites the prior value).
//   - A pass never creates a match and never clears an existing one.
//   - On a like, checks the reverse edge; if it is also a like, performs
//     the idempotent canonical-pair match insert. Two users liking each
//     other in the same instant both detect mutuality and both attempt
//     creation; the unique index lets exactly one insert survive and
//     both callers observe the same match.
//
// Example:
//
//	svc.RecordLike(ctx, "a1", "b2", true)
func (s *Service) RecordLike(ctx context.Context, fromUserID, toUserID string, isLike bool) (Result, error) {
	s.appCtx.Logger.Debug("RecordLike called", "from", fromUserID, "to", toUserID, "is_like", isLike)

	if fromUserID == "" || toUserID == "" {
		return Result{}, svcErr.Validation("fromUserId and toUserId are required")
	}
	if fromUserID == toUserID {
		return Result{}, svcErr.Validation("cannot swipe on yourself")
	}

	like, err := s.likeRepo.UpsertLike(ctx, fromUserID, toUserID, isLike)
	if err != nil {
		s.appCtx.Logger.Error("UpsertLike failed", "err", err)
		return Result{}, svcErr.Storage(err)
	}

	// keep the recipient's like-count cache warm
	key := s.appCtx.RedisCache.KeyForLikeCount(toUserID)
	if isLike {
		_, _ = s.appCtx.RedisCache.Incr(ctx, key)
	} else {
		_, _ = s.appCtx.RedisCache.Decr(ctx, key)
	}
	_ = s.appCtx.RedisCache.Client.Expire(ctx, key, time.Hour).Err()

	if !isLike {
		return Result{Like: like}, nil
	}

	mutual, err := s.likeRepo.HasLiked(ctx, toUserID, fromUserID)
	if err != nil {
		return Result{}, svcErr.Storage(err)
	}
	if !mutual {
		return Result{Like: like}, nil
	}

	user1, user2 := CanonicalPair(fromUserID, toUserID)
	match, err := s.matchRepo.CreateIfAbsent(ctx, user1, user2)
	if err != nil {
		return Result{}, svcErr.Storage(err)
	}

	s.appCtx.Logger.Info("match created", "match_id", match.ID, "user1", user1, "user2", user2)
	return Result{Like: like, Match: &match}, nil
}
