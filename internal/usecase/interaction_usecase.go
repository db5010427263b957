package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type InteractionUseCase interface {
	ToggleLike(postID, userID string, likeType entity.LikeType) (*entity.Like, error)
	CountLikes(postID string, likeType entity.LikeType) (int64, error)
	GetComments(postID string) ([]*entity.Comment, error)
	CreateComment(postID, userID, content string) (*entity.Comment, error)
}

type interactionUseCase struct {
	interactionRepo persistent.InteractionRepository
	postRepo        persistent.PostRepository
	userRepo        persistent.UserRepository
	redisClient     *redis.Client
	queueClient     *queue.Client
	logger          *logger.Logger
}

func NewInteractionUseCase(
	interactionRepo persistent.InteractionRepository,
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
		queueClient:     queueClient,
		logger:          logger,
	}
}

// ToggleLike is a read-modify-write: no record creates one, the same type
// retracts it, a different type switches it. The read-then-write gap is not
// atomic; concurrent toggles from one user on one post can race.
//
// Returns the surviving record, or nil when the vote was retracted.
func (uc *interactionUseCase) ToggleLike(postID, userID string, likeType entity.LikeType) (*entity.Like, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %s", postID)
		}
		return nil, err
	}

	existing, err := uc.interactionRepo.GetLike(postID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to check like status: %v", err)
		return nil, fmt.Errorf("failed to check like status: %w", err)
	}

	ctx := context.Background()

	if existing == nil {
		like := &entity.Like{
			ID:     uuid.New().String(),
			PostID: postID,
			UserID: userID,
			Type:   likeType,
		}
		if err := uc.interactionRepo.CreateLike(like); err != nil {
			return nil, fmt.Errorf("failed to like post: %w", err)
		}
		uc.bumpCount(ctx, postID, likeType, 1)

		if uc.queueClient != nil && post.AuthorID != userID {
			go uc.publishActivity(map[string]interface{}{
				"type":      "like",
				"post_id":   postID,
				"liker_id":  userID,
				"author_id": post.AuthorID,
			})
		}
		return like, nil
	}

	if existing.Type == likeType {
		if err := uc.interactionRepo.DeleteLike(existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		uc.bumpCount(ctx, postID, likeType, -1)
		return nil, nil
	}

	if err := uc.interactionRepo.UpdateLikeType(existing.ID, likeType); err != nil {
		return nil, fmt.Errorf("failed to switch like: %w", err)
	}
	uc.bumpCount(ctx, postID, existing.Type, -1)
	uc.bumpCount(ctx, postID, likeType, 1)

	existing.Type = likeType
	return existing, nil
}

// CountLikes serves from the Redis counter when warm and falls back to a
// count-only store query.
func (uc *interactionUseCase) CountLikes(postID string, likeType entity.LikeType) (int64, error) {
	ctx := context.Background()

	if uc.redisClient != nil {
		countStr, err := uc.redisClient.Get(ctx, likeCountKey(postID, likeType)).Result()
		if err == nil {
			count, _ := strconv.ParseInt(countStr, 10, 64)
			return count, nil
		}
	}

	count, err := uc.interactionRepo.CountLikes(postID, likeType)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, likeCountKey(postID, likeType), count, 24*time.Hour)
	}
	return count, nil
}

func (uc *interactionUseCase) GetComments(postID string) ([]*entity.Comment, error) {
	return uc.interactionRepo.GetComments(postID)
}

// CreateComment stamps the creation time at the application layer before
// writing, so ordering follows the app clock rather than the store's. The
// commenter's display name and avatar are denormalized onto the record.
func (uc *interactionUseCase) CreateComment(postID, userID, content string) (*entity.Comment, error) {
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %s", postID)
		}
		return nil, err
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commenter: %w", err)
	}

	comment := &entity.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.AvatarFileID(),
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := uc.interactionRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if uc.queueClient != nil {
		go uc.publishActivity(map[string]interface{}{
			"type":         "new_comment",
			"post_id":      postID,
			"commenter_id": userID,
		})
	}

	return comment, nil
}

func (uc *interactionUseCase) bumpCount(ctx context.Context, postID string, likeType entity.LikeType, delta int64) {
	if uc.redisClient == nil {
		return
	}
	if delta > 0 {
		uc.redisClient.IncrBy(ctx, likeCountKey(postID, likeType), delta)
	} else {
		uc.redisClient.DecrBy(ctx, likeCountKey(postID, likeType), -delta)
	}
}

func (uc *interactionUseCase) publishActivity(task map[string]interface{}) {
	if err := uc.queueClient.PublishActivityTask(task); err != nil {
		uc.logger.Error("Failed to publish activity task: %v", err)
	}
}

func likeCountKey(postID string, likeType entity.LikeType) string {
	return fmt.Sprintf("post:likes:%s:%s", postID, likeType)
}
