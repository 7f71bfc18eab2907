// Package catalog содержит бизнес-логику каталога курсов.
// Каталог доступен только для чтения, выборки кешируются в Redis.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taallam/learning-platform/internal/models"
)

const cacheTTL = time.Hour

// CourseRepository определяет методы чтения курсов из хранилища.
type CourseRepository interface {
	// GetCourse возвращает курс по ID, errs.ErrNotFound если не найден.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// ListCourses возвращает все курсы каталога.
	ListCourses(ctx context.Context) ([]*models.Course, error)
	// ListCoursesByCategory возвращает курсы указанной категории.
	ListCoursesByCategory(ctx context.Context, category string) ([]*models.Course, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует чтение каталога с кешированием.
type Service struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service каталога.
func New(repo CourseRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get возвращает курс по ID, используя кеш или репозиторий.
func (s *Service) Get(ctx context.Context, id int) (*models.Course, error) {
	var result *models.Course
	cacheKey := fmt.Sprintf("course:%d", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("course cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все курсы каталога, используя кеш или репозиторий.
func (s *Service) List(ctx context.Context) ([]*models.Course, error) {
	var result []*models.Course
	const cacheKey = "courses:all"
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("course cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache course list", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ListByCategory возвращает курсы категории, используя кеш или репозиторий.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*models.Course, error) {
	var result []*models.Course
	cacheKey := "courses:category:" + category
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("course cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListCoursesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache category list", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}
