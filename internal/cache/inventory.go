package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	AuthorKeyPrefix   = "author:%d"
	PostKeyPrefix     = "post:%d"
	PostTagsKeyPrefix = "post:%d:tags"
	TagKeyPrefix      = "tag:%d"
)

const (
	AuthorTTL   = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	PostTagsTTL = 10 * time.Minute
	TagTTL      = 30 * time.Minute
)

func AuthorKey(authorID uint) string {
	return fmt.Sprintf(AuthorKeyPrefix, authorID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostTagsKey(postID uint) string {
	return fmt.Sprintf(PostTagsKeyPrefix, postID)
}

func TagKey(tagID uint) string {
	return fmt.Sprintf(TagKeyPrefix, tagID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateAuthor(ctx context.Context, authorID uint) {
	Invalidate(ctx, AuthorKey(authorID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostTagsKey(postID))
}

func InvalidateTag(ctx context.Context, tagID uint) {
	Invalidate(ctx, TagKey(tagID))
}
