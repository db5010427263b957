package usecase

import (
	"sort"
	"testing"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeInteractionRepo keeps likes and comments in memory so toggle sequences
// can be exercised statefully.
type fakeInteractionRepo struct {
	likes    map[string]*entity.Like
	comments []*entity.Comment
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{likes: map[string]*entity.Like{}}
}

func (f *fakeInteractionRepo) GetLike(postID, userID string) (*entity.Like, error) {
	for _, l := range f.likes {
		if l.PostID == postID && l.UserID == userID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInteractionRepo) CreateLike(like *entity.Like) error {
	cp := *like
	f.likes[like.ID] = &cp
	return nil
}

func (f *fakeInteractionRepo) UpdateLikeType(id string, likeType entity.LikeType) error {
	l, ok := f.likes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Type = likeType
	return nil
}

func (f *fakeInteractionRepo) DeleteLike(id string) error {
	if _, ok := f.likes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.likes, id)
	return nil
}

func (f *fakeInteractionRepo) CountLikes(postID string, likeType entity.LikeType) (int64, error) {
	var n int64
	for _, l := range f.likes {
		if l.PostID == postID && l.Type == likeType {
			n++
		}
	}
	return n, nil
}

func (f *fakeInteractionRepo) GetComments(postID string) ([]*entity.Comment, error) {
	out := make([]*entity.Comment, 0)
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeInteractionRepo) CreateComment(comment *entity.Comment) error {
	cp := *comment
	f.comments = append(f.comments, &cp)
	return nil
}

var _ persistent.InteractionRepository = (*fakeInteractionRepo)(nil)

func newTestInteractionUseCase(t *testing.T, repo persistent.InteractionRepository) InteractionUseCase {
	t.Helper()

	mockPosts := new(MockPostRepository)
	mockPosts.On("GetByID", "hello-world").Return(&entity.Post{ID: "hello-world", AuthorID: "alice"}, nil)
	mockPosts.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", "bob").Return(&entity.User{ID: "bob", Name: "Bob"}, nil)

	return NewInteractionUseCase(repo, mockPosts, mockUsers, nil, nil, logger.New())
}

func TestToggleLike_CreatesThenRetracts(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	like, err := uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)
	assert.NotNil(t, like)

	count, _ := uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(1), count)

	like, err = uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)
	assert.Nil(t, like)

	count, _ = uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(0), count)
}

func TestToggleLike_OddEvenInvariant(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	// An odd number of same-type toggles leaves one record, an even number none.
	for i := 0; i < 5; i++ {
		_, err := uc.ToggleLike("hello-world", "bob", entity.LikeUp)
		assert.NoError(t, err)
	}
	count, _ := uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(1), count)

	_, err := uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)
	count, _ = uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(0), count)
}

func TestToggleLike_SwitchesType(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	_, err := uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)

	like, err := uc.ToggleLike("hello-world", "bob", entity.LikeDown)
	assert.NoError(t, err)
	assert.Equal(t, entity.LikeDown, like.Type)

	// One record total: the up vote became a down vote.
	up, _ := uc.CountLikes("hello-world", entity.LikeUp)
	down, _ := uc.CountLikes("hello-world", entity.LikeDown)
	assert.Equal(t, int64(0), up)
	assert.Equal(t, int64(1), down)
	assert.Equal(t, 1, len(repo.likes))
}

func TestToggleLike_PostNotFound(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	_, err := uc.ToggleLike("missing", "bob", entity.LikeUp)

	var nfErr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestToggleLike_IndependentPerUser(t *testing.T) {
	repo := newFakeInteractionRepo()

	mockPosts := new(MockPostRepository)
	mockPosts.On("GetByID", "hello-world").Return(&entity.Post{ID: "hello-world", AuthorID: "alice"}, nil)
	mockUsers := new(MockUserRepository)
	uc := NewInteractionUseCase(repo, mockPosts, mockUsers, nil, nil, logger.New())

	_, err := uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)
	_, err = uc.ToggleLike("hello-world", "carol", entity.LikeUp)
	assert.NoError(t, err)

	count, _ := uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(2), count)

	_, err = uc.ToggleLike("hello-world", "bob", entity.LikeUp)
	assert.NoError(t, err)

	count, _ = uc.CountLikes("hello-world", entity.LikeUp)
	assert.Equal(t, int64(1), count)
}

func TestCreateComment_StampsTimeAndDenormalizesUser(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	before := time.Now()
	comment, err := uc.CreateComment("hello-world", "bob", "Nice read")
	after := time.Now()

	assert.NoError(t, err)
	assert.Equal(t, "Bob", comment.UserName)
	assert.False(t, comment.CreatedAt.Before(before))
	assert.False(t, comment.CreatedAt.After(after))
}

func TestCreateComment_PostNotFound(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	_, err := uc.CreateComment("missing", "bob", "hello?")

	var nfErr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestGetComments_NewestFirst(t *testing.T) {
	repo := newFakeInteractionRepo()
	uc := newTestInteractionUseCase(t, repo)

	base := time.Now()
	for i, content := range []string{"first", "second", "third"} {
		repo.CreateComment(&entity.Comment{
			ID:        content,
			PostID:    "hello-world",
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	comments, err := uc.GetComments("hello-world")

	assert.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, []string{
		comments[0].Content, comments[1].Content, comments[2].Content,
	})
}
