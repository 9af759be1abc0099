package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Chirpio/internal/dto"
	"Chirpio/internal/model"
	"Chirpio/internal/repository"

	"go.uber.org/zap"
)

// 排期时间可接受的格式；不带时区的按 UTC 处理
var scheduleLayouts = []string{
	time.RFC3339, // 解析时小数秒可选
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type PostService struct {
	posts repository.PostRepository
	log   *zap.Logger
}

func NewPostService(posts repository.PostRepository, log *zap.Logger) *PostService {
	return &PostService{posts: posts, log: log}
}

// CreatePost 校验后落库，状态固定为 scheduled
func (s *PostService) CreatePost(ctx context.Context, auth AuthContext, req dto.CreatePostReq) (*dto.PostResp, error) {
	// 1. 参数校验 (顺序: content -> platforms -> scheduled_time)
	if req.Content == "" {
		return nil, ErrMissingContent
	}
	if err := validatePlatforms(req.Platforms); err != nil {
		return nil, err
	}
	scheduled, err := scheduledTime(req.ScheduledTime)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	// 2. 组装 Model
	post := &model.Post{
		OrganisationID: auth.OrganisationID,
		UserID:         auth.UserID,
		Content:        req.Content,
		Platforms:      req.Platforms,
		Status:         model.PostStatusScheduled,
		ScheduledTime:  scheduled,
	}

	// 3. 落库
	if err := s.posts.Create(ctx, post); err != nil {
		s.log.Error("❌ 创建帖子失败", traceField(ctx), zap.String("organisation_id", auth.OrganisationID), zap.Error(err))
		return nil, ErrUpstream.WithMessage("Failed to create post")
	}

	return &dto.PostResp{
		ID:            post.ID,
		Content:       post.Content,
		Platforms:     post.Platforms,
		Status:        post.Status,
		ScheduledTime: post.ScheduledTime,
		CreatedAt:     post.CreatedAt,
	}, nil
}

func validatePlatforms(platforms []string) error {
	if len(platforms) == 0 {
		return ErrInvalidPlatforms
	}
	var invalid []string
	for _, p := range platforms {
		if !model.IsPlatform(p) {
			invalid = append(invalid, p)
		}
	}
	if len(invalid) > 0 {
		return ErrInvalidPlatforms.WithMessage("Invalid platforms: " + strings.Join(invalid, ", "))
	}
	return nil
}

// scheduledTime 字符串走 ParseSchedule，数字按毫秒时间戳处理；空值返回 nil
func scheduledTime(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case 'n', 'f': // null, false
		if string(raw) == "null" || string(raw) == "false" {
			return nil, nil
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		t, err := ParseSchedule(s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return nil, err
		}
		if ms == 0 {
			return nil, nil
		}
		t := time.UnixMilli(int64(ms)).UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("unsupported scheduled_time %s", raw)
}

// ParseSchedule 解析排期时间，结果统一为 UTC
func ParseSchedule(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}
