package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"

	"gorm.io/gorm"
)

// PostFilters narrows a post listing. The zero value lists every post
// regardless of status or author.
type PostFilters struct {
	Status   entity.PostStatus
	AuthorID string
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetBySlug(slug string) (*entity.Post, error)
	List(filters PostFilters) ([]*entity.Post, error)
	Update(post *entity.Post) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// GetBySlug returns the first match. Slugs are not unique at the store
// level, so which document wins for a duplicated slug is arbitrary.
func (r *postRepository) GetBySlug(slug string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("slug = ?", slug).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(filters PostFilters) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Order("created_at DESC")

	if filters.Status != "" {
		query = query.Where("status = ?", string(filters.Status))
	}
	if filters.AuthorID != "" {
		query = query.Where("author_id = ?", filters.AuthorID)
	}

	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	return r.db.Save(ToPostModel(post)).Error
}

func (r *postRepository) Delete(id string) error {
	result := r.db.Delete(&model.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
