package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService coordinates post writes that span more than one repository:
// creating a post under an author and resolving tag names to join rows.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	Tags     []string
}

type UpdatePostInput struct {
	PostID  uint
	Title   string
	Content string
}

func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
	}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
	maxTagsPerReq = 10
)

// CreatePost validates the input, inserts the post under the given author
// and attaches any requested tags by name, creating missing ones.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewValidationError("Author is required")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	names, err := normalizeTagNames(in.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.postRepo.CreateForAuthor(ctx, in.AuthorID, post); err != nil {
		return nil, err
	}

	if len(names) > 0 {
		tags, err := s.tagRepo.GetOrCreateBatch(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			if err := s.postRepo.AttachTag(ctx, post.ID, tag.ID); err != nil {
				return nil, err
			}
		}
		post.Tags = tags
	}

	return post, nil
}

// TagPost resolves tag names to stored tags and attaches them to the post.
// Existing attachments are left in place.
func (s *PostService) TagPost(ctx context.Context, postID uint, rawNames []string) ([]models.Tag, error) {
	if len(rawNames) == 0 {
		return nil, models.NewValidationError("At least one tag is required")
	}

	names, err := normalizeTagNames(rawNames)
	if err != nil {
		return nil, err
	}

	// confirm the post exists before creating tags for it
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.GetOrCreateBatch(ctx, names)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if err := s.postRepo.AttachTag(ctx, postID, tag.ID); err != nil {
			return nil, err
		}
	}
	return s.postRepo.GetTags(ctx, postID)
}

// UntagPost removes the (post, tag) attachment.
func (s *PostService) UntagPost(ctx context.Context, postID, tagID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.DetachTag(ctx, postID, tagID)
}

// UpdatePost applies title and content changes to an existing post.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// normalizeTagNames lowercases, deduplicates and validates raw tag names.
func normalizeTagNames(raw []string) ([]string, error) {
	if len(raw) > maxTagsPerReq {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		name := validation.NormalizeTagName(r)
		if err := validation.ValidateTagName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
