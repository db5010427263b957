package usecase

import (
	"errors"
	"fmt"
	"io"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Title         string
	Slug          string
	Content       string
	FeaturedImage string
	AuthorID      string
	Status        entity.PostStatus
}

type UpdatePostInput struct {
	Title         *string
	Content       *string
	FeaturedImage *string
	Status        *entity.PostStatus
}

type PostUseCase interface {
	CreatePost(input CreatePostInput) (*entity.Post, error)
	GetPostBySlug(slug, requesterID string) (*entity.Post, error)
	ListPosts(filters persistent.PostFilters) ([]*entity.Post, error)
	UpdatePost(id, userID string, input UpdatePostInput) (*entity.Post, error)
	DeletePost(id, userID string) error
	UploadFile(fileReader io.Reader, fileKey, contentType string) (string, error)
	FileViewURL(fileKey string) (string, error)
	FilePreviewURL(fileKey string) (string, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	userRepo    persistent.UserRepository
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		userRepo:    userRepo,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
	}
}

// CreatePost uses the sanitized slug as the document ID so posts get
// human-readable identifiers. An empty sanitized slug or an ID collision
// falls back to a random UUID.
func (uc *postUseCase) CreatePost(input CreatePostInput) (*entity.Post, error) {
	slug := input.Slug
	if slug == "" {
		slug = SlugFromTitle(input.Title)
	}
	slug = SanitizeSlug(slug)

	docID := slug
	if docID == "" {
		docID = uuid.New().String()
	}

	status := input.Status
	if status == "" {
		status = entity.StatusActive
	}

	// Denormalize author name and avatar onto the post so list views render
	// without a join.
	author, err := uc.userRepo.GetByID(input.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	post := &entity.Post{
		ID:            docID,
		Title:         input.Title,
		Slug:          slug,
		Content:       input.Content,
		FeaturedImage: input.FeaturedImage,
		AuthorID:      author.ID,
		AuthorName:    author.Name,
		AuthorAvatar:  author.AvatarFileID(),
		Status:        status,
	}

	if err := uc.postRepo.Create(post); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		post.ID = uuid.New().String()
		if err := uc.postRepo.Create(post); err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
	}

	if uc.queueClient != nil {
		go uc.publishActivity(map[string]interface{}{
			"type":      "new_post",
			"post_id":   post.ID,
			"author_id": post.AuthorID,
		})
	}

	return post, nil
}

// GetPostBySlug resolves a post for the given requester. Inactive posts are
// visible only to their author; everyone else gets a not-found, so drafts do
// not leak through slug guessing.
func (uc *postUseCase) GetPostBySlug(slug, requesterID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %s", slug)
		}
		return nil, err
	}
	if post.Status == entity.StatusInactive && post.AuthorID != requesterID {
		return nil, apperr.NotFound("post not found: %s", slug)
	}
	return post, nil
}

// ListPosts restricts to active posts unless the caller asks otherwise.
func (uc *postUseCase) ListPosts(filters persistent.PostFilters) ([]*entity.Post, error) {
	if filters.Status == "" {
		filters.Status = entity.StatusActive
	}
	return uc.postRepo.List(filters)
}

func (uc *postUseCase) UpdatePost(id, userID string, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found: %s", id)
		}
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, apperr.Forbidden("you can only update your own posts")
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Status != nil {
		post.Status = *input.Status
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(id, userID string) error {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found: %s", id)
		}
		return err
	}

	if post.AuthorID != userID {
		return apperr.Forbidden("you can only delete your own posts")
	}

	if err := uc.postRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found: %s", id)
		}
		return err
	}

	if post.FeaturedImage != "" {
		if err := uc.s3Client.DeleteFile(post.FeaturedImage); err != nil {
			uc.logger.Warn("Failed to delete featured image %s: %v", post.FeaturedImage, err)
		}
	}

	return nil
}

func (uc *postUseCase) UploadFile(fileReader io.Reader, fileKey, contentType string) (string, error) {
	return uc.s3Client.UploadFile(fileKey, fileReader, contentType)
}

func (uc *postUseCase) FileViewURL(fileKey string) (string, error) {
	return uc.s3Client.FileViewURL(fileKey)
}

func (uc *postUseCase) FilePreviewURL(fileKey string) (string, error) {
	return uc.s3Client.FilePreviewURL(fileKey)
}

func (uc *postUseCase) publishActivity(task map[string]interface{}) {
	if err := uc.queueClient.PublishActivityTask(task); err != nil {
		uc.logger.Error("Failed to publish activity task: %v", err)
	}
}
