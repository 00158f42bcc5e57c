package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/database"
	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// StoreRepository represents the bookstore repository
type StoreRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *database.DB, logger *logrus.Logger) *StoreRepository {
	return &StoreRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new store with its category tag joins in a single transaction.
// タグの結合行の挿入に失敗した場合は店舗行ごとロールバックする。
func (r *StoreRepository) Create(ctx context.Context, req *models.CreateStoreRequest) (*models.Store, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	store := &models.Store{
		Name:         req.Name,
		AreaID:       req.AreaID,
		XURL:         req.XURL,
		InstagramURL: req.InstagramURL,
		WebsiteURL:   req.WebsiteURL,
		GoogleMapURL: req.GoogleMapURL,
		Description:  req.Description,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryTags: []models.CategoryTag{},
	}

	query := `
		INSERT INTO stores (name, area_id, x_url, instagram_url, website_url, google_map_url,
			description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		store.Name, store.AreaID, store.XURL, store.InstagramURL, store.WebsiteURL,
		store.GoogleMapURL, store.Description, store.IsActive, store.CreatedAt, store.UpdatedAt,
	).Scan(&store.ID)

	if err != nil {
		r.logger.WithError(err).Error("店舗の作成に失敗")
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	for _, tagID := range req.CategoryTagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO store_category_tags (store_id, category_tag_id) VALUES ($1, $2)`,
			store.ID, tagID,
		)
		if err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"store_id": store.ID,
				"tag_id":   tagID,
			}).Error("カテゴリタグの関連付けに失敗")
			return nil, fmt.Errorf("failed to attach category tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.WithField("store_id", store.ID).Info("店舗を作成しました")

	// 結合済みのエリア・タグ情報を含めて返す
	return r.GetByID(ctx, store.ID)
}

// GetByID retrieves a store by ID with its area and category tags
func (r *StoreRepository) GetByID(ctx context.Context, id int) (*models.Store, error) {
	query := `
		SELECT s.id, s.name, s.area_id, s.x_url, s.instagram_url, s.website_url,
			s.google_map_url, s.description, s.is_active, s.created_at, s.updated_at,
			a.id, a.name, a.prefecture, a.sort_order, a.is_active
		FROM stores s
		JOIN areas a ON a.id = s.area_id
		WHERE s.id = $1`

	store := &models.Store{Area: &models.Area{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID, &store.Name, &store.AreaID, &store.XURL, &store.InstagramURL,
		&store.WebsiteURL, &store.GoogleMapURL, &store.Description, &store.IsActive,
		&store.CreatedAt, &store.UpdatedAt,
		&store.Area.ID, &store.Area.Name, &store.Area.Prefecture,
		&store.Area.SortOrder, &store.Area.IsActive,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		r.logger.WithError(err).WithField("store_id", id).Error("店舗の取得に失敗")
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	tags, err := r.categoryTagsByStoreIDs(ctx, []int{store.ID})
	if err != nil {
		return nil, err
	}
	store.CategoryTags = tags[store.ID]
	if store.CategoryTags == nil {
		store.CategoryTags = []models.CategoryTag{}
	}

	return store, nil
}

// List retrieves active stores with filtering, each with its area and category tags
func (r *StoreRepository) List(ctx context.Context, filter *models.StoreFilter) ([]models.Store, error) {
	query := `
		SELECT s.id, s.name, s.area_id, s.x_url, s.instagram_url, s.website_url,
			s.google_map_url, s.description, s.is_active, s.created_at, s.updated_at,
			a.id, a.name, a.prefecture, a.sort_order, a.is_active
		FROM stores s
		JOIN areas a ON a.id = s.area_id
		WHERE s.is_active = TRUE`

	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (s.name ILIKE $%d OR s.description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM store_category_tags sct
			JOIN category_tags ct ON ct.id = sct.category_tag_id
			WHERE sct.store_id = s.id AND ct.name = $%d)`, argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	query += " ORDER BY s.created_at DESC, s.id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("店舗リストの取得に失敗")
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []models.Store{}
	var storeIDs []int
	for rows.Next() {
		store := models.Store{Area: &models.Area{}, CategoryTags: []models.CategoryTag{}}
		err := rows.Scan(
			&store.ID, &store.Name, &store.AreaID, &store.XURL, &store.InstagramURL,
			&store.WebsiteURL, &store.GoogleMapURL, &store.Description, &store.IsActive,
			&store.CreatedAt, &store.UpdatedAt,
			&store.Area.ID, &store.Area.Name, &store.Area.Prefecture,
			&store.Area.SortOrder, &store.Area.IsActive,
		)
		if err != nil {
			r.logger.WithError(err).Error("店舗のスキャンに失敗")
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
		storeIDs = append(storeIDs, store.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(storeIDs) > 0 {
		tags, err := r.categoryTagsByStoreIDs(ctx, storeIDs)
		if err != nil {
			return nil, err
		}
		for i := range stores {
			if t := tags[stores[i].ID]; t != nil {
				stores[i].CategoryTags = t
			}
		}
	}

	return stores, nil
}

// categoryTagsByStoreIDs fetches category tags for a set of stores in one query
func (r *StoreRepository) categoryTagsByStoreIDs(ctx context.Context, storeIDs []int) (map[int][]models.CategoryTag, error) {
	query := `
		SELECT sct.store_id, ct.id, ct.name, ct.display_name, ct.is_active
		FROM store_category_tags sct
		JOIN category_tags ct ON ct.id = sct.category_tag_id
		WHERE sct.store_id = ANY($1)
		ORDER BY ct.name`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(storeIDs))
	if err != nil {
		r.logger.WithError(err).Error("カテゴリタグの取得に失敗")
		return nil, fmt.Errorf("failed to list category tags for stores: %w", err)
	}
	defer rows.Close()

	result := map[int][]models.CategoryTag{}
	for rows.Next() {
		var storeID int
		var tag models.CategoryTag
		if err := rows.Scan(&storeID, &tag.ID, &tag.Name, &tag.DisplayName, &tag.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category tag: %w", err)
		}
		result[storeID] = append(result[storeID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// ListAreas retrieves active areas ordered by sort key then name
func (r *StoreRepository) ListAreas(ctx context.Context) ([]models.Area, error) {
	query := `
		SELECT id, name, prefecture, sort_order, is_active
		FROM areas
		WHERE is_active = TRUE
		ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("エリアリストの取得に失敗")
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var area models.Area
		if err := rows.Scan(&area.ID, &area.Name, &area.Prefecture, &area.SortOrder, &area.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, area)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return areas, nil
}

// ListCategoryTags retrieves active category tags ordered by name
func (r *StoreRepository) ListCategoryTags(ctx context.Context) ([]models.CategoryTag, error) {
	query := `
		SELECT id, name, display_name, is_active
		FROM category_tags
		WHERE is_active = TRUE
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("カテゴリタグリストの取得に失敗")
		return nil, fmt.Errorf("failed to list category tags: %w", err)
	}
	defer rows.Close()

	tags := []models.CategoryTag{}
	for rows.Next() {
		var tag models.CategoryTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.DisplayName, &tag.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return tags, nil
}
