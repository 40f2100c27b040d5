package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/liliang-cn/closet/internal/domain"
	"github.com/liliang-cn/closet/internal/observability"
	"github.com/liliang-cn/closet/internal/repository"
	"github.com/liliang-cn/closet/internal/wardrobe"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// WardrobeService manages a user's clothing items and shapes them for display
type WardrobeService struct {
	clothingRepo *repository.ClothingRepository
	logger       *zap.Logger
	metrics      *observability.Collector
	locale       language.Tag
}

// NewWardrobeService creates a new wardrobe service. logger and metrics may be nil.
func NewWardrobeService(
	clothingRepo *repository.ClothingRepository,
	logger *zap.Logger,
	metrics *observability.Collector,
	locale language.Tag,
) *WardrobeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WardrobeService{
		clothingRepo: clothingRepo,
		logger:       logger.Named("wardrobe"),
		metrics:      metrics,
		locale:       locale,
	}
}

// Item operations

func (s *WardrobeService) Create(ctx context.Context, userID string, req *domain.CreateClothingRequest) (*domain.ClothingItem, error) {
	item := &domain.ClothingItem{
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Color:        req.Color,
		Brand:        req.Brand,
		Size:         req.Size,
		Tags:         req.Tags,
		PurchaseDate: req.PurchaseDate,
		ImageURL:     req.ImageURL,
	}
	if err := normalize(item); err != nil {
		return nil, err
	}

	if err := s.clothingRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.metrics.ItemCreated(1)
	s.logger.Info("clothing item created",
		zap.String("user_id", userID),
		zap.String("item_id", item.ID),
		zap.String("category", item.Category),
	)
	return item, nil
}

func (s *WardrobeService) Get(ctx context.Context, userID, id string) (*domain.ClothingItem, error) {
	item, err := s.clothingRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *WardrobeService) List(ctx context.Context, userID string) ([]*domain.ClothingItem, error) {
	return s.clothingRepo.ListByUser(ctx, userID)
}

func (s *WardrobeService) Update(ctx context.Context, userID, id string, req *domain.UpdateClothingRequest) (*domain.ClothingItem, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	assign(&item.Description, req.Description)
	assign(&item.Color, req.Color)
	assign(&item.Brand, req.Brand)
	assign(&item.Size, req.Size)
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	assign(&item.PurchaseDate, req.PurchaseDate)
	assign(&item.ImageURL, req.ImageURL)
	if err := normalize(item); err != nil {
		return nil, err
	}

	if err := s.clothingRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("clothing item updated", zap.String("user_id", userID), zap.String("item_id", id))
	return item, nil
}

func (s *WardrobeService) Delete(ctx context.Context, userID, id string) error {
	if err := s.clothingRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.metrics.ItemDeleted()
	s.logger.Info("clothing item deleted", zap.String("user_id", userID), zap.String("item_id", id))
	return nil
}

// Import stores items for userID and returns how many were created. It stops at
// the first invalid or failing item.
func (s *WardrobeService) Import(ctx context.Context, userID string, items []*domain.ClothingItem) (int, error) {
	created := 0
	for i, in := range items {
		if in == nil {
			return created, fmt.Errorf("item %d: %w", i, domain.ErrInvalidRequest)
		}
		item := *in
		item.ID = ""
		item.UserID = userID
		if err := normalize(&item); err != nil {
			return created, fmt.Errorf("item %d: %w", i, err)
		}
		if err := s.clothingRepo.Create(ctx, &item); err != nil {
			return created, fmt.Errorf("item %d: %w", i, err)
		}
		created++
	}
	s.metrics.ItemCreated(created)
	s.logger.Info("wardrobe imported", zap.String("user_id", userID), zap.Int("count", created))
	return created, nil
}

// Views

// Browse lists the user's items matching criteria, ordered by sortBy.
func (s *WardrobeService) Browse(ctx context.Context, userID string, criteria domain.Criteria, sortBy string) ([]*domain.ClothingItem, error) {
	items, err := s.clothingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wardrobe.SortWithLocale(wardrobe.Filter(items, criteria), domain.ParseSortKey(sortBy), s.locale), nil
}

// Stats summarizes the user's items matching criteria.
func (s *WardrobeService) Stats(ctx context.Context, userID string, criteria domain.Criteria) (*domain.StatsResponse, error) {
	items, err := s.clothingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items = wardrobe.Filter(items, criteria)
	return &domain.StatsResponse{
		Summary: wardrobe.Summarize(items),
		Total:   len(items),
	}, nil
}

// Query filters and sorts a caller-supplied collection.
func (s *WardrobeService) Query(items []*domain.ClothingItem, criteria domain.Criteria, sortBy string) ([]*domain.ClothingItem, error) {
	if err := checkCollection(items); err != nil {
		return nil, err
	}
	return wardrobe.SortWithLocale(wardrobe.Filter(items, criteria), domain.ParseSortKey(sortBy), s.locale), nil
}

// Aggregate summarizes a caller-supplied collection.
func (s *WardrobeService) Aggregate(items []*domain.ClothingItem) (*domain.Summary, error) {
	if err := checkCollection(items); err != nil {
		return nil, err
	}
	summary := wardrobe.Summarize(items)
	return &summary, nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// checkCollection rejects a missing collection or one holding null entries.
func checkCollection(items []*domain.ClothingItem) error {
	if items == nil {
		return fmt.Errorf("items is required: %w", domain.ErrInvalidRequest)
	}
	for i, item := range items {
		if item == nil {
			return fmt.Errorf("items[%d] is null: %w", i, domain.ErrInvalidRequest)
		}
	}
	return nil
}

func normalize(item *domain.ClothingItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Description = strings.TrimSpace(item.Description)
	item.Color = strings.TrimSpace(item.Color)
	item.Brand = strings.TrimSpace(item.Brand)
	item.Size = strings.TrimSpace(item.Size)
	item.PurchaseDate = strings.TrimSpace(item.PurchaseDate)
	item.ImageURL = strings.TrimSpace(item.ImageURL)

	var tags []string
	for _, t := range item.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	item.Tags = tags

	if item.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidRequest)
	}
	if item.Category == "" {
		return fmt.Errorf("category is required: %w", domain.ErrInvalidRequest)
	}
	if item.PurchaseDate != "" {
		if _, ok := wardrobe.ParsePurchaseDate(item.PurchaseDate); !ok {
			return fmt.Errorf("purchaseDate %q is not an ISO-8601 date: %w", item.PurchaseDate, domain.ErrInvalidRequest)
		}
	}
	return nil
}
