package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"

	"gorm.io/gorm"
)

type InteractionRepository interface {
	GetLike(postID, userID string) (*entity.Like, error)
	CreateLike(like *entity.Like) error
	UpdateLikeType(id string, likeType entity.LikeType) error
	DeleteLike(id string) error
	CountLikes(postID string, likeType entity.LikeType) (int64, error)
	GetComments(postID string) ([]*entity.Comment, error)
	CreateComment(comment *entity.Comment) error
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) GetLike(postID, userID string) (*entity.Like, error) {
	var likeModel model.LikeModel
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&likeModel).Error; err != nil {
		return nil, err
	}
	return ToLikeEntity(&likeModel), nil
}

func (r *interactionRepository) CreateLike(like *entity.Like) error {
	likeModel := &model.LikeModel{
		ID:     like.ID,
		PostID: like.PostID,
		UserID: like.UserID,
		Type:   string(like.Type),
	}
	if err := r.db.Create(likeModel).Error; err != nil {
		return err
	}
	*like = *ToLikeEntity(likeModel)
	return nil
}

func (r *interactionRepository) UpdateLikeType(id string, likeType entity.LikeType) error {
	return r.db.Model(&model.LikeModel{}).Where("id = ?", id).Update("type", string(likeType)).Error
}

func (r *interactionRepository) DeleteLike(id string) error {
	return r.db.Unscoped().Delete(&model.LikeModel{}, "id = ?", id).Error
}

// CountLikes is a count-only query; the like records themselves are never
// materialized.
func (r *interactionRepository) CountLikes(postID string, likeType entity.LikeType) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("post_id = ? AND type = ?", postID, string(likeType)).
		Count(&count).Error
	return count, err
}

func (r *interactionRepository) GetComments(postID string) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *interactionRepository) CreateComment(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}
