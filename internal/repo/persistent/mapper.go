package persistent

import (
	"encoding/json"

	"inkwell/internal/entity"
	"inkwell/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	prefs := map[string]interface{}{}
	if m.Prefs != "" {
		_ = json.Unmarshal([]byte(m.Prefs), &prefs)
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Password:  m.Password,
		Prefs:     prefs,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	prefs := "{}"
	if len(e.Prefs) > 0 {
		if raw, err := json.Marshal(e.Prefs); err == nil {
			prefs = string(raw)
		}
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Password:  e.Password,
		Prefs:     prefs,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          m.Slug,
		Content:       m.Content,
		FeaturedImage: m.FeaturedImage,
		AuthorID:      m.AuthorID,
		AuthorName:    m.AuthorName,
		AuthorAvatar:  m.AuthorAvatar,
		Status:        entity.PostStatus(m.Status),
		Upvotes:       m.Upvotes,
		Downvotes:     m.Downvotes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:            e.ID,
		Title:         e.Title,
		Slug:          e.Slug,
		Content:       e.Content,
		FeaturedImage: e.FeaturedImage,
		AuthorID:      e.AuthorID,
		AuthorName:    e.AuthorName,
		AuthorAvatar:  e.AuthorAvatar,
		Status:        string(e.Status),
		Upvotes:       e.Upvotes,
		Downvotes:     e.Downvotes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToLikeEntity(m *model.LikeModel) *entity.Like {
	if m == nil {
		return nil
	}

	return &entity.Like{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		Type:      entity.LikeType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserImage: m.UserImage,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		PostID:    e.PostID,
		UserID:    e.UserID,
		UserName:  e.UserName,
		UserImage: e.UserImage,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}
